package core

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"
)

// Arguments of the client
type Arguments struct {
	Orgs          []int         // organizations to run, in order
	ConfigPath    string        // network configuration file (optional)
	Listen        bool          // relay chaincode events to the relay channel
	ListenTimeout time.Duration // how long to keep listening after the demo
	LogLevel      string
}

// DefineArguments registers the flags on the given set and returns the
// arguments they are parsed into.
func DefineArguments(flags *pflag.FlagSet) *Arguments {
	args := &Arguments{}

	flags.IntSliceVarP(&args.Orgs, "orgs", "o", []int{1, 2, 3}, "organization numbers to run, in order")
	flags.StringVarP(&args.ConfigPath, "config", "c", "", "--config=/path/to/network.yml")
	flags.BoolVarP(&args.Listen, "listen", "l", false, "relay CreateAsset events to the relay channel")
	flags.DurationVar(&args.ListenTimeout, "listen-timeout", 30*time.Second, "time to keep listening after the demo (0 until interrupted)")
	flags.StringVar(&args.LogLevel, "log-level", "info", "debug, info, warn or error")

	return args
}

// CheckArgs makes sure the arguments conform to the requirements
func (a *Arguments) CheckArgs() error {
	if len(a.Orgs) == 0 {
		return errors.New("no organization given")
	}

	seen := make(map[int]bool, len(a.Orgs))
	for _, org := range a.Orgs {
		if org <= 0 {
			return errors.Errorf("invalid organization number: %d", org)
		}
		if seen[org] {
			return errors.Errorf("organization %d given twice", org)
		}
		seen[org] = true
	}

	if a.ListenTimeout < 0 {
		return errors.Errorf("negative listen timeout: %s", a.ListenTimeout)
	}

	if _, err := a.Level(); err != nil {
		return err
	}

	return nil
}

// Level is the parsed log level.
func (a *Arguments) Level() (zapcore.Level, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(a.LogLevel)); err != nil {
		return level, errors.Wrapf(err, "invalid log level %q", a.LogLevel)
	}
	return level, nil
}
