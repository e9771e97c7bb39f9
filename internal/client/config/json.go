package config

import (
	"encoding/json"
	"os"

	"habitkeeper/internal/flagx"
)

// JsonConfig mirrors Config for JSON unmarshalling:
//
//	{
//	  "server_endpoint_addr": "http://127.0.0.1:8080"
//	}
type JsonConfig struct {
	ServerEndpointAddr string `json:"server_endpoint_addr"`
}

func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.ServerEndpointAddr = c.ServerEndpointAddr
}
