// Command mcrelay runs the headless Minecraft authentication relay: it
// impersonates a Minecraft server just long enough to run the vanilla
// login handshake against Mojang's session servers, then disconnects the
// client with a short-lived token a third-party app can redeem later.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"mcrelay/internal/broadcast"
	"mcrelay/internal/config"
	"mcrelay/internal/mojang"
	"mcrelay/internal/supervisor"
)

// relayVersion is bumped by hand on release; there's no build-info wiring
// here since this isn't shipped as a versioned module to other projects.
const relayVersion = "1.0.0"

func main() {
	var (
		configPath = flag.String("config", "server.yaml", "path to the relay's YAML configuration")
		version    = flag.Bool("v", false, "print the relay version and exit")
		versionLng = flag.Bool("version", false, "print the relay version and exit")
	)
	flag.Parse()

	if *version || *versionLng {
		fmt.Printf("mcrelay v%s\n", relayVersion)
		return
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("falling back to default configuration")
		cfg = config.Default()
	}

	srv, err := supervisor.Start(cfg, mojang.NewHTTPVerifier())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start relay")
	}

	srv.OnJoin(func(player broadcast.Player, token string) {
		log.Info().Str("username", player.Username).Str("uuid", player.UUID.String()).Str("token", token).Msg("player authenticated")
	})
	srv.OnError(func(err error) {
		log.Err(err).Msg("connection ended with error")
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Info().Msg("shutting down")
	if err := srv.Shutdown(); err != nil {
		log.Err(err).Msg("error during shutdown")
	}
}
