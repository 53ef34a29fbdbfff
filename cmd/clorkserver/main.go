/*
Clorkserver starts a Clork server and begins listening for new connections.

Usage:

	clorkserver [flags]
	clorkserver [flags] -l [[ADDRESS]:PORT]

Once started, the Clork server will listen for HTTP requests and respond to
them using REST protocol. By default, it will listen on localhost:8080. This
can be changed with the --listen/-l flag (or config via environment var). The
flag argument must be either a full address with port, such as
"192.168.0.2:6001", or just the port preceded by a colon, such as ":6001".

The flags are:

	-v, --version
		Give the current version of the Clork server and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, will default to the value of environment
		variable CLORK_LISTEN_ADDRESS, and if that is not given, will default
		to localhost:8080.

	-w, --world FILE
		Run the given CWF world file for every session. If not given, will
		default to the value of environment variable CLORK_WORLD, and if that
		is not given, to the file "world.cwf" in the current working
		directory.

	--db DRIVER[:PARAMS]
		Use the given DB connection string. DRIVER must be one of the
		following: inmem, sqlite. inmem has no further params. sqlite needs
		the path to the data directory such as sqlite:path/to/db_dir. If not
		given, will default to the value of environment variable
		CLORK_DATABASE. If no DB driver is specified or an empty one is given,
		an in-memory database is automatically selected.
*/
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/tmoresby/clork/internal/version"
	"github.com/tmoresby/clork/server"
)

const (
	EnvListen = "CLORK_LISTEN_ADDRESS"
	EnvWorld  = "CLORK_WORLD"
	EnvDB     = "CLORK_DATABASE"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of the Clork server and then exit.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagWorld   = pflag.StringP("world", "w", "", "Run the given CWF world file for every session.")
	flagDB      = pflag.String("db", "", "Use the given DB connection string.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (Clork v%s)\n", version.ServerCurrent, version.Current)
		return
	}

	args := pflag.Args()

	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	// get address info
	port := 0
	addr := ""
	listenAddr := os.Getenv(EnvListen)
	if pflag.Lookup("listen").Changed {
		listenAddr = *flagListen
	}
	if listenAddr != "" {
		bindParts := strings.SplitN(listenAddr, ":", 2)
		if len(bindParts) != 2 {
			fmt.Fprintf(os.Stderr, "Listen address is not in ADDRESS:PORT or :PORT format.\nDo -h for help.\n")
			os.Exit(1)
		}

		var err error

		addr = bindParts[0]
		port, err = strconv.Atoi(bindParts[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "%q is not a valid port number.\nDo -h for help.\n", bindParts[1])
			os.Exit(1)
		}
	}

	// which world does this server run?
	worldFile := os.Getenv(EnvWorld)
	if pflag.Lookup("world").Changed {
		worldFile = *flagWorld
	}
	if worldFile == "" {
		worldFile = "world.cwf"
	}

	// look at db connection string
	dbPath := ""
	dbConnStr := os.Getenv(EnvDB)
	if pflag.Lookup("db").Changed {
		dbConnStr = *flagDB
	}
	if dbConnStr != "" {
		dbParts := strings.SplitN(dbConnStr, ":", 2)
		if len(dbParts) != 2 && dbConnStr != "inmem" {
			fmt.Fprintf(os.Stderr, "Not a valid DB string: %q\nDo -h for help.\n", dbConnStr)
			os.Exit(1)
		}
		if len(dbParts) != 2 {
			dbParts = []string{"inmem", ""}
		}

		switch strings.ToLower(dbParts[0]) {
		case "inmem":
			dbPath = ""
		case "sqlite":
			dbPath = dbParts[1]
			err := os.MkdirAll(dbPath, 0770)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Could not build data directory: %s\n", err)
				os.Exit(1)
			}
		default:
			fmt.Fprintf(os.Stderr, "unsupported DB engine: %q\n", dbParts[0])
			os.Exit(1)
		}
	}

	// configuration complete, initialize the server
	srv, err := server.New(worldFile, dbPath)
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}
	log.Printf("DEBUG Server initialized")

	// okay, now actually launch it
	log.Printf("INFO  Starting Clork server %s...", version.ServerCurrent)
	srv.ServeForever(addr, port)
}
