// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package config

import (
	"gitlab.com/auxchain/auxchaind/types/chaincfg"
)

// ActiveNetParams is a pointer to the parameters specific to the
// currently active network. The validator, retarget, and builder
// components read consensus parameters only through this pointer (or an
// explicitly passed *chaincfg.Params), never through a hardcoded network.
var ActiveNetParams = &chaincfg.MainNetParams

// Options holds the command-line-configurable subset of node behavior,
// parsed with go-flags. Only the fields that affect consensus-core wiring
// live here; networking/RPC/wallet options belong to their own layers.
type Options struct {
	Network      string `short:"n" long:"network" description:"Network to run on" default:"mainnet" choice:"mainnet" choice:"testnet"`
	StrictAuxPow bool   `long:"strict-auxpow" description:"Treat an AuxPoW parent-hash mismatch as a fatal validation error instead of logging it"`
	LogLevel     string `long:"log-level" description:"Logging level (trace, debug, info, warn, error)" default:"info"`
	DataDir      string `long:"datadir" description:"Directory to store block data" default:"./data"`
}

// NetParams resolves the Options.Network selection to a *chaincfg.Params,
// applying the StrictAuxPow override on top of the network default.
func (o *Options) NetParams() *chaincfg.Params {
	var p chaincfg.Params
	switch o.Network {
	case "testnet":
		p = chaincfg.TestNetParams
	default:
		p = chaincfg.MainNetParams
	}
	p.StrictAuxPow = o.StrictAuxPow
	return &p
}
