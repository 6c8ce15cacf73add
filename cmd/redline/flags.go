package main

import (
	"flag"
)

type AppFlags struct {
	GlobalConfigFile string
	ListenAddr       string
	Endpoint         string
}

func ParseFlags() AppFlags {
	globalConfigFile := flag.String("config", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := flag.String("c", "", "Alias for -config")

	listenAddr := flag.String("listen", "", "Gateway listen address (overrides config file if set)")
	listenAddrAlias := flag.String("l", "", "Alias for -listen")

	endpoint := flag.String("endpoint", "", "Text transformation service endpoint (overrides config file if set)")
	endpointAlias := flag.String("e", "", "Alias for -endpoint")

	flag.Parse()

	flags := AppFlags{}

	if *globalConfigFile != "" {
		flags.GlobalConfigFile = *globalConfigFile
	} else if *globalConfigFileAlias != "" {
		flags.GlobalConfigFile = *globalConfigFileAlias
	}

	if *listenAddr != "" {
		flags.ListenAddr = *listenAddr
	} else if *listenAddrAlias != "" {
		flags.ListenAddr = *listenAddrAlias
	}

	if *endpoint != "" {
		flags.Endpoint = *endpoint
	} else if *endpointAlias != "" {
		flags.Endpoint = *endpointAlias
	}

	return flags
}
