package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"
	"os"

	"github.com/kardianos/service"

	fx "github.com/robotalks/collar.go/pkg/framework"
	env "github.com/robotalks/collar.go/pkg/l1/env/daemon"
)

func init() {
	env.SetupFlags()
}

// serviceArgs drops the control action so the installed service runs
// with the same flags.
func serviceArgs(action string) []string {
	var args []string
	for _, arg := range os.Args[1:] {
		if arg != action {
			args = append(args, arg)
		}
	}
	return args
}

func main() {
	flag.Parse()

	if action := flag.Arg(0); action != "" {
		if !env.IsServiceAction(action) {
			log.Fatalf("unknown action %q, expect one of %v", action, env.ServiceActions)
		}
		s, _, err := env.NewService(nil, serviceArgs(action))
		if err != nil {
			log.Fatalln(err)
		}
		if err := service.Control(s, action); err != nil {
			log.Fatalln(err)
		}
		return
	}

	e := env.NewConfig().MustNewEnv()
	if service.Interactive() {
		fx.RunOrFail(fx.NamedRun("collard", e))
		return
	}
	s, _, err := env.NewService(fx.NamedRun("collard", e), nil)
	if err != nil {
		log.Fatalln(err)
	}
	if err := s.Run(); err != nil {
		log.Fatalln(err)
	}
}
