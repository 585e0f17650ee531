package cli

import "time"

type Options struct {
	Command   []string
	Token     string
	BaseURL   string
	TokenFile string
	Timeout   time.Duration
	LogFile   string
	Debug     bool
}
