/*
Clork starts an interactive Clork engine session.

It reads in a world file and starts the game in the designated starting room.
The interpreter will then print what is happening in the game to stdout and
read player input from stdin until the game is over or the "QUIT" command is
input.

Usage:

	clork [flags]

The flags are:

	-version
		Give the current version of Clork and then exit.

	-w/-world [FILE]
		Use the provided CWF resource file for the world. A file ending in
		".cwc" is read as a compiled world. Defaults to the file "world.cwf"
		in the current working directory.

	-d/-direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading command input even if launched in
		a tty with stdin and stdout.

	-ml
		Speak the machine protocol instead of playing interactively: one JSON
		action per input line, one JSON observation per output line.

	-ml-rewards
		With -ml, include a reward breakdown and session statistics in every
		observation.

	-compile [FILE]
		Compile the world file to the given path and exit instead of playing.

Once a session has started, typed input is parsed as game commands. For an
explanation of the commands, type "HELP" once in a session. To exit the
interpreter, type "QUIT".
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tmoresby/clork"
	"github.com/tmoresby/clork/internal/cwf"
	"github.com/tmoresby/clork/internal/mlio"
	"github.com/tmoresby/clork/internal/version"
)

const (

	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitGameError indicates an unsuccessful program execution due to a
	// problem during the game.
	ExitGameError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue initializing the engine.
	ExitInitError
)

var (
	returnCode  int   = ExitSuccess
	flagVersion *bool = flag.Bool("version", false, "Gives the version info")
	worldFile   string
	forceDirect bool
	mlMode      bool
	mlRewards   bool
	compileTo   string
)

func init() {
	const (
		defaultWorldFile = "world.cwf"
		worldUsage       = "the CWF world data or manifest file that contains the definition of the world"
		forceDirectUsage = "force reading directly from stdin instead of going through GNU readline where possible"
		mlUsage          = "speak the JSON machine protocol instead of playing interactively"
		mlRewardsUsage   = "include reward shaping info in machine-protocol observations"
		compileUsage     = "compile the world file to the given path and exit"
	)
	flag.StringVar(&worldFile, "world", defaultWorldFile, worldUsage)
	flag.StringVar(&worldFile, "w", defaultWorldFile, worldUsage+" (shorthand)")
	flag.BoolVar(&forceDirect, "direct", false, forceDirectUsage)
	flag.BoolVar(&forceDirect, "d", false, forceDirectUsage+" (shorthand)")
	flag.BoolVar(&mlMode, "ml", false, mlUsage)
	flag.BoolVar(&mlRewards, "ml-rewards", false, mlRewardsUsage)
	flag.StringVar(&compileTo, "compile", "", compileUsage)
}

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic("unrecoverable panic occured")
		} else {
			os.Exit(returnCode)
		}
	}()

	flag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if compileTo != "" {
		if err := compileWorld(worldFile, compileTo); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
		}
		return
	}

	if mlMode {
		if err := runMachine(worldFile, mlRewards); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitGameError
		}
		return
	}

	gameEng, initErr := clork.New(os.Stdin, os.Stdout, worldFile, forceDirect)
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer gameEng.Close()

	err := gameEng.RunUntilQuit()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitGameError
		return
	}
}

func compileWorld(src, dest string) error {
	wd, err := cwf.LoadResourceBundle(src)
	if err != nil {
		return err
	}
	if err := cwf.WriteCompiled(dest, wd); err != nil {
		return err
	}
	fmt.Printf("compiled %s -> %s\n", src, dest)
	return nil
}

func runMachine(worldPath string, useRewards bool) error {
	load := func() (cwf.WorldData, error) {
		if filepath.Ext(worldPath) == ".cwc" {
			return cwf.ReadCompiled(worldPath)
		}
		return cwf.LoadResourceBundle(worldPath)
	}

	sesh, err := mlio.NewSession(load, useRewards)
	if err != nil {
		return err
	}

	return sesh.Run(os.Stdin, os.Stdout)
}
