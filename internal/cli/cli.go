package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"tablecrm_cashier/internal/config"
	"tablecrm_cashier/internal/pos"
	"tablecrm_cashier/internal/tablecrm"

	"go.uber.org/zap"
)

var errAuthFailed = errors.New("authorization failed: token rejected or API unreachable")

type Runner struct {
	options Options
	logger  *zap.Logger
	service *pos.Service
}

func NewRunner(cfg config.Config, logger *zap.Logger, service *pos.Service) *Runner {
	logger = logger.Named("cli")
	opts := Options{
		Token:     cfg.Token,
		BaseURL:   cfg.BaseURL,
		TokenFile: cfg.TokenFile,
		Timeout:   cfg.Timeout,
		LogFile:   cfg.LogFile,
		Debug:     cfg.Debug,
	}

	return &Runner{
		options: opts,
		logger:  logger,
		service: service,
	}
}

func (r *Runner) Execute() error {
	return runCLI(&r.options, r.logger)
}

func runCLI(opts *Options, logger *zap.Logger) error {
	var timeoutSeconds int

	fs := flag.NewFlagSet("tablecrm-cashier", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [command]\n", fs.Name())
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.Token, "token", opts.Token, "TableCRM API token (TABLECRM_TOKEN)")
	fs.StringVar(&opts.BaseURL, "base-url", opts.BaseURL, "TableCRM API base URL (TABLECRM_BASE_URL)")
	fs.StringVar(&opts.TokenFile, "token-file", opts.TokenFile, "Stored token path (TOKEN_FILE)")
	fs.BoolVar(&opts.Debug, "debug", opts.Debug, "Enable debug logging")
	fs.StringVar(&opts.LogFile, "log-file", opts.LogFile, "Log file path")
	fs.IntVar(&timeoutSeconds, "timeout", int(opts.Timeout.Seconds()), "Timeout in seconds")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			fs.Usage()
			return nil
		}
		return err
	}

	if timeoutSeconds > 0 {
		opts.Timeout = time.Duration(timeoutSeconds) * time.Second
	}
	opts.Command = fs.Args()

	service := newServiceFromOptions(opts, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if len(opts.Command) > 0 {
		return runOneShot(ctx, opts, service)
	}
	return runREPL(ctx, opts, service)
}

func newServiceFromOptions(opts *Options, logger *zap.Logger) *pos.Service {
	cfg := config.Config{
		Token:     opts.Token,
		BaseURL:   opts.BaseURL,
		TokenFile: opts.TokenFile,
		Timeout:   opts.Timeout,
	}
	client := tablecrm.NewClient(cfg, logger)
	store := pos.NewTokenStore(cfg.TokenFile)
	session := pos.NewSession(client, store, logger)
	return pos.NewService(session, logger)
}

func runOneShot(ctx context.Context, opts *Options, service *pos.Service) error {
	if !signIn(ctx, opts, service) {
		return errAuthFailed
	}
	service.Refresh(ctx)
	return dispatch(ctx, service, opts.Command, os.Stdout)
}

func runREPL(ctx context.Context, opts *Options, service *pos.Service) error {
	reader := bufio.NewScanner(os.Stdin)
	session := service.Session()
	fmt.Fprintln(os.Stdout, "TableCRM — мобильная касса (введите 'help', 'exit' для выхода)")

	if signIn(ctx, opts, service) {
		service.Refresh(ctx)
		fmt.Fprintln(os.Stdout, "Авторизация успешна.")
	}

	for {
		if session.Authenticated() {
			fmt.Fprint(os.Stdout, "> ")
		} else {
			fmt.Fprint(os.Stdout, "Токен> ")
		}
		if !reader.Scan() {
			return reader.Err()
		}

		line := strings.TrimSpace(reader.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		if !session.Authenticated() {
			if session.Authenticate(ctx, line) {
				service.Refresh(ctx)
				fmt.Fprintln(os.Stdout, "Авторизация успешна.")
			} else {
				fmt.Fprintln(os.Stdout, "Токен отклонен. Попробуйте еще раз.")
			}
			continue
		}

		if err := dispatch(ctx, service, strings.Fields(line), os.Stdout); err != nil {
			fmt.Fprintf(os.Stdout, "Ошибка: %s\n", err)
		}
	}
}

// signIn prefers an explicit token over a stored one. Both paths go
// through the same read-through probe.
func signIn(ctx context.Context, opts *Options, service *pos.Service) bool {
	session := service.Session()
	if strings.TrimSpace(opts.Token) != "" {
		return session.Authenticate(ctx, opts.Token)
	}
	if session.Resume(ctx) {
		fmt.Fprintln(os.Stdout, "Сессия восстановлена из сохраненного токена.")
		return true
	}
	return false
}
