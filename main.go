package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/AlextheYounga/movepress-sub000/mover"
	"github.com/AlextheYounga/movepress-sub000/util"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var interruptSignals = []os.Signal{
	os.Interrupt,
	syscall.SIGTERM,
	syscall.SIGINT,
}

func main() {
	var (
		configPath string
		yes        bool
	)

	flag.StringVar(&configPath, "config", ".", "directory containing movefile.yml")
	flag.BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	flag.Usage = usage
	flag.Parse()

	command := flag.Arg(0)
	if command != "push" && command != "pull" {
		usage()
		os.Exit(2)
	}

	// reading the movefile
	config, err := util.LoadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot read movefile")
	}

	if config.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if err = config.Validate(); err != nil {
		log.Fatal().Err(err).Msg("movefile is not valid")
	}

	// catching interrupt signals so a move stops between steps
	// stop() or a signal catch makes context Done
	ctx, stop := signal.NotifyContext(context.Background(), interruptSignals...)
	defer stop()

	dst := destinationName(command)
	if !yes && !confirm(fmt.Sprintf("This will overwrite the %s database. Continue?", dst)) {
		log.Info().Msg("aborted")
		return
	}

	m := mover.New(config, mover.NewExecRunner())

	switch command {
	case "push":
		err = m.Push(ctx)
	case "pull":
		err = m.Pull(ctx)
	}

	if err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("move failed")
	}

	log.Info().Str("command", command).Msg("move finished")
}

func destinationName(command string) string {
	if command == "push" {
		return "remote"
	}
	return "local"
}

// confirm asks a y/N question on stdin. Anything but an explicit yes is a no.
func confirm(question string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", question)

	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func usage() {
	fmt.Fprintf(os.Stderr, `movepress moves a WordPress site between environments.

Usage:
  movepress [flags] push    move the local site to the remote environment
  movepress [flags] pull    move the remote site to the local environment

Flags:
`)
	flag.PrintDefaults()
}
