package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"

	"github.com/robotalks/collar.go/pkg/cli/sh"
	"github.com/robotalks/collar.go/pkg/l0/emitter/sim"
	"github.com/robotalks/collar.go/pkg/l0/pulse"
	"github.com/robotalks/collar.go/pkg/l0/tx"
	"github.com/robotalks/collar.go/pkg/l1/control"
	env "github.com/robotalks/collar.go/pkg/l1/env/connector"
	"github.com/robotalks/collar.go/pkg/l1/service"

	_ "github.com/robotalks/collar.go/pkg/cli/cmds/collar"
)

var simSpeed = 1.0

func init() {
	env.SetupFlags()
	flag.Float64Var(&simSpeed, "sim-speed", simSpeed, "Time scale of local sim output.")
}

// local builds an in-process transmitter with the sim output,
// used when no registry is configured.
func local() *service.Handler {
	e := sim.New(pulse.DefaultTickHz)
	e.Speed = simSpeed
	q := tx.New(e, pulse.MustNewMap(pulse.DefaultTickHz, pulse.DefaultTiming))
	c, err := control.New(q, &control.MemStore{})
	if err != nil {
		log.Fatalln(err)
	}
	return service.New(c)
}

func main() {
	flag.Parse()
	if env.Default().IsRemote() {
		sh.Main(nil)
		return
	}
	sh.Main(local())
}
