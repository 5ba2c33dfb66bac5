// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package config

import (
	flags "github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"gitlab.com/auxchain/auxchaind/corelog"
	"gitlab.com/auxchain/auxchaind/node/blockchain"
	"gitlab.com/auxchain/auxchaind/node/chaindata"
	"gitlab.com/auxchain/auxchaind/node/mining"
)

// ParseOptions parses command-line arguments into an Options value, points
// ActiveNetParams at the selected network, and wires a logger built from
// the log-level and data-dir options into every consensus package. Host
// binaries embedding the consensus core call this once at startup; library
// consumers can skip it and pass a *chaincfg.Params explicitly instead.
func ParseOptions(args []string) (*Options, error) {
	opts := &Options{}
	parser := flags.NewParser(opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	ActiveNetParams = opts.NetParams()
	opts.SetupLogging(corelog.Config{
		FileLoggingEnabled: true,
		Directory:          opts.DataDir,
	})
	return opts, nil
}

// SetupLogging builds the node logger from the parsed log level and hands
// it to each consensus package, returning it for the host's own use.
func (o *Options) SetupLogging(cfg corelog.Config) zerolog.Logger {
	logger := corelog.New("core", corelog.ParseLevel(o.LogLevel), cfg)

	chaindata.UseLogger(logger)
	blockchain.UseLogger(logger)
	mining.UseLogger(logger)

	return logger
}
