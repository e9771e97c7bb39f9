package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

func (a *App) ListEntries(ctx context.Context) {

	trackerID, err := GetSimpleText(a.reader, "Enter tracker id")
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	list, err := a.client.ListEntries(ctx, trackerID)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	for _, e := range list {
		note := ""
		if e.Note != nil {
			note = "  // " + *e.Note
		}
		fmt.Printf("%s  %s  %s%s\n", e.ID, e.RecordedAt, e.Value.DisplayValue, note)
	}
}

func (a *App) AddEntry(ctx context.Context) {

	trackerID, err := GetSimpleText(a.reader, "Enter tracker id")
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	trackerType, err := GetSimpleText(a.reader, "Enter value type (BOOLEAN, NUMBER, TEXT, DURATION, CURRENCY)")
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	raw, err := GetSimpleText(a.reader, "Enter value (true/false, 42.5, free text, 08:30, 12.99)")
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	note, err := GetSimpleText(a.reader, "Enter note (optional)")
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	value, err := encodeValueLiteral(strings.ToUpper(strings.TrimSpace(trackerType)), raw)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	entry, err := a.client.AddEntry(ctx, trackerID, strings.ToUpper(strings.TrimSpace(trackerType)), value, note)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	fmt.Println("Recorded:", entry.ID, entry.Value.DisplayValue)
}

// encodeValueLiteral turns user input into the JSON literal the API expects
// for the given type: bare literals for BOOLEAN, NUMBER and CURRENCY,
// JSON strings for TEXT and DURATION (HH:MM).
func encodeValueLiteral(trackerType, raw string) (json.RawMessage, error) {
	switch trackerType {
	case "BOOLEAN", "NUMBER", "CURRENCY":
		return json.RawMessage(raw), nil
	case "TEXT", "DURATION":
		b, err := json.Marshal(raw)
		if err != nil {
			return nil, err
		}
		return json.RawMessage(b), nil
	default:
		return nil, fmt.Errorf("unknown type %q", trackerType)
	}
}
