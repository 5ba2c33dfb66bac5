// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gitlab.com/auxchain/auxchaind/corelog"
	"gitlab.com/auxchain/auxchaind/types/chaincfg"
)

func TestNetParams(t *testing.T) {
	opts := &Options{Network: "testnet", StrictAuxPow: true}
	params := opts.NetParams()

	require.Equal(t, "testnet", params.Name)
	require.True(t, params.ReduceMinDifficulty)
	require.True(t, params.StrictAuxPow)

	// The override lands on a copy, not the package-level instance.
	require.False(t, chaincfg.TestNetParams.StrictAuxPow)

	// Anything else resolves to mainnet with the default leniency.
	params = (&Options{Network: "mainnet"}).NetParams()
	require.Equal(t, "mainnet", params.Name)
	require.False(t, params.StrictAuxPow)
}

func TestParseOptions(t *testing.T) {
	defer func() { ActiveNetParams = &chaincfg.MainNetParams }()

	opts, err := ParseOptions([]string{
		"--network", "testnet",
		"--strict-auxpow",
		"--log-level", "debug",
		"--datadir", t.TempDir(),
	})
	require.NoError(t, err)
	require.Equal(t, "testnet", opts.Network)
	require.True(t, opts.StrictAuxPow)
	require.Equal(t, "debug", opts.LogLevel)

	require.Equal(t, "testnet", ActiveNetParams.Name)
	require.True(t, ActiveNetParams.StrictAuxPow)
}

func TestParseOptionsDefaults(t *testing.T) {
	defer func() { ActiveNetParams = &chaincfg.MainNetParams }()

	opts, err := ParseOptions([]string{"--datadir", t.TempDir()})
	require.NoError(t, err)
	require.Equal(t, "mainnet", opts.Network)
	require.False(t, opts.StrictAuxPow)
	require.Equal(t, "info", opts.LogLevel)
	require.Equal(t, "mainnet", ActiveNetParams.Name)
}

func TestParseOptionsRejectsUnknownNetwork(t *testing.T) {
	_, err := ParseOptions([]string{"--network", "simnet"})
	require.Error(t, err)
}

func TestSetupLogging(t *testing.T) {
	quiet := corelog.Config{DisableConsoleLog: true}

	logger := (&Options{LogLevel: "debug"}).SetupLogging(quiet)
	require.Equal(t, zerolog.DebugLevel, logger.GetLevel())

	// Unrecognized levels fall back to info.
	logger = (&Options{LogLevel: "shouting"}).SetupLogging(quiet)
	require.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}
