package sh

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/abiosoft/ishell"

	fx "github.com/robotalks/collar.go/pkg/framework"
	"github.com/robotalks/collar.go/pkg/l1"
	"github.com/robotalks/collar.go/pkg/l1/comm"
	env "github.com/robotalks/collar.go/pkg/l1/env/connector"
	"github.com/robotalks/collar.go/pkg/l1/msgs"
)

// Shell provides ishell backed interactive shell.
// Commands are served by a remote controller when connected,
// otherwise by the local handler if present.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	AutoConnect bool
	Timeout     time.Duration

	Shell  *ishell.Shell
	Config *env.Config
	Local  l1.CommandHandler
	Remote *Remote
}

// Remote is an active connection to a controller.
type Remote struct {
	Ref  l1.ControllerRef
	Conn l1.ControllerConn
}

const (
	shellKey     = "$shell"
	localPrompt  = "[local] > "
	nonePrompt   = "[none] > "
	defaultLimit = 2 * time.Second
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	// commands
	commands = []*ishell.Cmd{
		&DiscoverCmd,
		&ConnectCmd,
		&DisconnectCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *env.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,
		Timeout:     defaultLimit,

		Shell:  ishell.New(),
		Config: conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(nonePrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// WithLocal serves commands with handler when not connected.
func (s *Shell) WithLocal(handler l1.CommandHandler) *Shell {
	s.Local = handler
	s.Shell.SetPrompt(localPrompt)
	return s
}

// WithAutoConnect sets AutoConnect.
func (s *Shell) WithAutoConnect(en bool) *Shell {
	s.AutoConnect = en
	return s
}

// Do sends a command to the current controller and waits for the reply.
func (s *Shell) Do(msg fx.Message) (fx.Message, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()
	if s.Remote != nil {
		return comm.Do(ctx, s.Remote.Conn, msg)
	}
	if s.Local != nil {
		reply, err := s.Local.HandleCommand(ctx, msg)
		if err == nil && reply == nil {
			reply = msgs.NewCommandOK()
		}
		return reply, err
	}
	return nil, fmt.Errorf("not connected")
}

// DoCommand runs a command and prints the result.
func DoCommand(c *ishell.Context, msg fx.Message) (fx.Message, error) {
	s := ShellFrom(c)
	reply, err := s.Do(msg)
	if err != nil {
		c.Err(err)
		return nil, err
	}
	c.Println(s.Format(reply))
	return reply, nil
}

// Format renders a reply for display.
func (s *Shell) Format(msg fx.Message) string {
	serializable, ok := msg.(msgs.SerializableMessage)
	if !ok {
		return fmt.Sprintf("%v", msg)
	}
	if s.OutputJSON {
		out, err := json.Marshal(serializable.Serializable())
		if err != nil {
			return err.Error()
		}
		return string(out)
	}
	if _, ok := msg.(*msgs.CommandOK); ok {
		return "OK"
	}
	return msgs.NameOf(msg) + " " + serializable.Serializable().String()
}

// FormatInfo prints ControllerInfo into friendly string for display.
func FormatInfo(info l1.ControllerInfo) string {
	var w bytes.Buffer
	fmt.Fprintf(&w, "%s", info.Ref.Name())
	if info.Meta.Description != "" {
		fmt.Fprintf(&w, ": %s", info.Meta.Description)
	}
	return w.String()
}

// DiscoverControllers discovers controllers.
func (s *Shell) DiscoverControllers() (l1.Connector, []l1.ControllerInfo, error) {
	connector, err := s.Config.NewConnector()
	if err != nil {
		return nil, nil, err
	}
	infoList, err := connector.Discover(context.TODO())
	if err != nil {
		return connector, nil, err
	}
	items := make([]l1.ControllerInfo, 0, len(infoList))
	for _, info := range infoList {
		if info.Ref.Type == l1.ControllerType {
			items = append(items, info)
		}
	}
	return connector, items, nil
}

// SelectController discovers controllers and asks for a choice.
func (s *Shell) SelectController() (*l1.ControllerInfo, error) {
	_, infoList, err := s.DiscoverControllers()
	if err != nil {
		return nil, err
	}
	if len(infoList) == 0 {
		return nil, nil
	}
	var index int
	if len(infoList) > 1 {
		if !s.Interactive {
			return nil, fmt.Errorf("more than 1 controllers discovered in non-interactive mode")
		}
		items := make([]string, len(infoList))
		for n, info := range infoList {
			items[n] = FormatInfo(info)
		}
		index = s.Shell.MultiChoice(items, "Which one to connect?")
	}
	return &infoList[index], nil
}

// Connect connects controller with ref.
func (s *Shell) Connect(ref l1.ControllerRef) error {
	connector, err := s.Config.NewConnector()
	if err != nil {
		return err
	}
	conn, err := connector.Connect(context.Background(), ref)
	if err != nil {
		return err
	}
	s.Disconnect()
	s.Remote = &Remote{Ref: ref, Conn: conn}
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", ref.Name()))
	go s.printEvents(conn)
	return nil
}

// Disconnect disconnects current controller.
func (s *Shell) Disconnect() {
	if s.Remote == nil {
		return
	}
	s.Remote.Conn.Close()
	s.Remote = nil
	if s.Local != nil {
		s.Shell.SetPrompt(localPrompt)
	} else {
		s.Shell.SetPrompt(nonePrompt)
	}
}

func (s *Shell) printEvents(conn l1.ControllerConn) {
	for msg := range conn.Events() {
		if s.Interactive {
			s.Shell.Println(s.Format(msg))
		}
	}
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if s.AutoConnect && s.Config.IsRemote() {
		var err error
		if s.Config.Ref.ID != "" {
			err = s.Connect(s.Config.Ref)
		} else {
			err = s.connectDiscovered()
		}
		if err != nil {
			log.Fatalf("connect failed: %v", err)
		}
	}

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

func (s *Shell) connectDiscovered() error {
	info, err := s.SelectController()
	if err != nil {
		return err
	}
	if info == nil {
		return fmt.Errorf("no controller discovered")
	}
	return s.Connect(info.Ref)
}

var (
	// DiscoverCmd discovers controllers.
	DiscoverCmd = ishell.Cmd{
		Name:    "discover",
		Aliases: []string{"list", "ls"},
		Help:    "list controllers in registry",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			_, infoList, err := s.DiscoverControllers()
			if err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				out, err := json.Marshal(infoList)
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(string(out))
				return
			}
			if len(infoList) == 0 {
				c.Println("No controllers found")
				return
			}
			for _, info := range infoList {
				c.Println(FormatInfo(info))
			}
		},
	}

	// ConnectCmd connects a controller.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"conn"},
		Help:    "[ID] connect a controller",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			var err error
			if len(c.Args) > 0 {
				err = s.Connect(l1.ControllerRef{Type: l1.ControllerType, ID: c.Args[0]})
			} else {
				err = s.connectDiscovered()
			}
			if err != nil {
				c.Err(err)
			}
		},
	}

	// DisconnectCmd disconnects current controller.
	DisconnectCmd = ishell.Cmd{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Help:    "disconnect from controller",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Disconnect()
		},
	}
)

// Main is a helper to provide a single call in main.
// local serves commands when no registry is configured.
func Main(local l1.CommandHandler) {
	flag.Parse()
	s := New(env.NewConfig()).WithAutoConnect(true)
	if local != nil {
		s.WithLocal(local)
	}
	s.Run(flag.Args()...)
}
