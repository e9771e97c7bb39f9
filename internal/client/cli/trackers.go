package cli

import (
	"context"
	"fmt"
)

func (a *App) ListTrackers(ctx context.Context) {
	list, err := a.client.ListTrackers(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	for _, t := range list {
		fmt.Printf("%s  %-10s %s\n", t.ID, t.Type, t.Name)
	}
}

func (a *App) NewTracker(ctx context.Context) {

	name, err := GetSimpleText(a.reader, "Enter tracker name")
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	trackerType, err := GetSimpleText(a.reader, "Enter type (BOOLEAN, NUMBER, TEXT, DURATION, CURRENCY)")
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	description, err := GetSimpleText(a.reader, "Enter description (optional)")
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	tracker, err := a.client.CreateTracker(ctx, name, trackerType, description)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	fmt.Println("Created:", tracker.ID)
}

func (a *App) Stats(ctx context.Context) {

	trackerID, err := GetSimpleText(a.reader, "Enter tracker id")
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	result, err := a.client.TrackerStats(ctx, trackerID)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	for k, v := range result {
		fmt.Printf("%s: %v\n", k, v)
	}
}
