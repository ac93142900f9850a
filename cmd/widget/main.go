package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-auth-widget/browser"
	"github.com/jrsteele09/go-auth-widget/exchange"
	"github.com/jrsteele09/go-auth-widget/internal/config"
	"github.com/jrsteele09/go-auth-widget/server"
	"github.com/jrsteele09/go-auth-widget/session"
	"github.com/jrsteele09/go-auth-widget/storage"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running widget: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Widget stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	frame := browser.NewFrame(c.GetAppURL(), browser.WithLogger(logger))
	runtime, err := session.NewRuntime(c.GetIdentityProviderURL(), session.Collaborators{
		Exchanger: exchange.NewClient(c.GetExchangeURL(), exchange.WithLogger(logger)),
		Storage:   storage.NewMemory(),
		Navigator: frame,
	}, session.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("session.NewRuntime: %w", err)
	}

	go runtime.Run(ctx)
	runtime.Startup(c.GetStartupTime(), c.GetAppURL(), c.GetAppID())

	httpServer := &http.Server{Addr: c.GetPort(), Handler: server.New(c, runtime)}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func listenAndServe(server *http.Server) error {
	log.Printf("Widget listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
