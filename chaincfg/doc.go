// Copyright (c) 2025 The EquiForge developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines chain configuration parameters.
//
// In addition to the main EquiForge network, which is intended for the
// transfer of monetary value, there exist three other standard networks:
// a public test network, a regression test network, and a simulation
// network. These networks are incompatible with each other (each sharing
// a different genesis block and network magic) and software should
// handle errors where input intended for one network is used on an
// application instance running on a different network.
//
// For main packages, a (typically global) var may be assigned the result
// of one of the standard Params-returning functions for use as the
// application's "active" network. When a network parameter is needed, it
// may then be looked up through this variable (either directly, or
// hidden in a library call).
//
//	package main
//
//	import (
//	        "flag"
//	        "fmt"
//	        "log"
//
//	        "github.com/arnoac/equiforge/chaincfg"
//	)
//
//	var testnet = flag.Bool("testnet", false, "operate on the EquiForge test network")
//
//	func main() {
//	        flag.Parse()
//
//	        // By default (without -testnet), use mainnet.
//	        params := chaincfg.MainNetParams()
//	        if *testnet {
//	                params = chaincfg.TestNetParams()
//	        }
//
//	        fmt.Println(params.Name, params.GenesisHash())
//	}
package chaincfg
