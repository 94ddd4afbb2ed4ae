// Command hotelctl is a thin command-line wrapper around the reservation
// ledger stores. It is an external collaborator of the core library: it
// wires the stores to flat files in a data directory, forwards one
// operation per invocation and formats the result or failure for the user.
//
// Configuration comes from the environment (optionally via a .env file):
//
//	LEDGER_DATA_DIR   directory holding the store files (default "data")
//	LEDGER_LOG_LEVEL  zerolog level, e.g. debug, info, warn (default warn)
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/hotelops/reservation-ledger-go/ledger/fileengine"
)

const defaultDataDir = "data"

var errUsage = errors.New("usage error")

func main() {
	_ = godotenv.Load()

	logger := newLogger(os.Getenv("LEDGER_LOG_LEVEL"))

	dataDir := os.Getenv("LEDGER_DATA_DIR")
	if dataDir == "" {
		dataDir = defaultDataDir
	}

	ldg, err := fileengine.OpenLedger(dataDir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(context.Background(), ldg, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			printUsage()
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Usage: hotelctl <entity> <operation> [flags]

  customer create -id ID -name NAME -email EMAIL
  customer delete -id ID
  customer show -id ID
  customer modify -id ID [-name NAME] [-email EMAIL]
  customer list

  hotel create -name NAME -location LOCATION -rooms N
  hotel delete -name NAME
  hotel show -name NAME
  hotel modify -name NAME [-new-name NAME] [-location LOCATION] [-rooms N]
  hotel list

  reservation create -customer ID -hotel NAME
  reservation cancel -id ID
  reservation show -id ID
  reservation list

  audit [-repair]
`)
}
