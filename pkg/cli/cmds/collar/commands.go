// Package collar provides shell commands of the collar transmitter.
package collar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/collar.go/pkg/cli/sh"
	"github.com/robotalks/collar.go/pkg/l0/packet"
	"github.com/robotalks/collar.go/pkg/l1/msgs"
	pb "github.com/robotalks/collar.go/pkg/proto/collar/v1"
)

// argUint parses the optional argument at index.
func argUint(c *ishell.Context, index int, name string) (val uint32, present bool, err error) {
	if len(c.Args) <= index {
		return 0, false, nil
	}
	n, err := strconv.ParseUint(c.Args[index], 0, 32)
	if err != nil {
		return 0, true, fmt.Errorf("invalid %s %q", name, c.Args[index])
	}
	return uint32(n), true, nil
}

func requiredUint(name string, fn func(*ishell.Context, uint32)) func(*ishell.Context) {
	return func(c *ishell.Context) {
		val, present, err := argUint(c, 0, name)
		if err == nil && !present {
			err = fmt.Errorf("%s required", name)
		}
		if err != nil {
			c.Err(err)
			return
		}
		fn(c, val)
	}
}

func setAction(action packet.Action) func(*ishell.Context) {
	return func(c *ishell.Context) {
		intensity, present, err := argUint(c, 0, "INTENSITY")
		if err != nil {
			c.Err(err)
			return
		}
		sh.DoCommand(c, &msgs.SetActionRequest{SetActionRequest: pb.SetActionRequest{
			Action:       uint32(action),
			HasIntensity: present,
			Intensity:    intensity,
		}})
	}
}

// DecodeBits decodes text bits into a command.
func DecodeBits(args []string) (packet.Command, error) {
	bits, err := packet.ParseBits(strings.Join(args, ""))
	if err != nil {
		return packet.Command{}, err
	}
	return packet.Decode(bits)
}

// WaitIdle polls the controller until the queue is idle.
func WaitIdle(s *sh.Shell, timeout, interval time.Duration) (*msgs.QueueStatus, error) {
	deadline := time.Now().Add(timeout)
	for {
		reply, err := s.Do(&msgs.StatusQuery{})
		if err != nil {
			return nil, err
		}
		status, ok := reply.(*msgs.QueueStatus)
		if !ok {
			return nil, fmt.Errorf("unexpected reply %s", msgs.NameOf(reply))
		}
		if !status.Transmitting {
			return status, nil
		}
		if time.Now().After(deadline) {
			return status, fmt.Errorf("still transmitting, %d pending", status.Pending)
		}
		time.Sleep(interval)
	}
}

var (
	// IDCmd sets the receiver ID.
	IDCmd = ishell.Cmd{
		Name: "id",
		Help: "ID(0-65535) set receiver id",
		Func: requiredUint("ID", func(c *ishell.Context, id uint32) {
			sh.DoCommand(c, &msgs.SetIDRequest{SetIDRequest: pb.SetIDRequest{Id: id}})
		}),
	}

	// ChannelCmd sets the channel.
	ChannelCmd = ishell.Cmd{
		Name:    "channel",
		Aliases: []string{"c"},
		Help:    "CHANNEL(0-2) set channel",
		Func: requiredUint("CHANNEL", func(c *ishell.Context, ch uint32) {
			sh.DoCommand(c, &msgs.SetChannelRequest{SetChannelRequest: pb.SetChannelRequest{Channel: ch}})
		}),
	}

	// IntensityCmd sets the intensity.
	IntensityCmd = ishell.Cmd{
		Name:    "intensity",
		Aliases: []string{"i"},
		Help:    "INTENSITY(0-99) set intensity",
		Func: requiredUint("INTENSITY", func(c *ishell.Context, intensity uint32) {
			sh.DoCommand(c, &msgs.SetIntensityRequest{SetIntensityRequest: pb.SetIntensityRequest{Intensity: intensity}})
		}),
	}

	// ShockCmd selects shock.
	ShockCmd = ishell.Cmd{
		Name:    "shock",
		Aliases: []string{"s"},
		Help:    "[INTENSITY] select shock",
		Func:    setAction(packet.ActionShock),
	}

	// VibrateCmd selects vibrate.
	VibrateCmd = ishell.Cmd{
		Name:    "vibrate",
		Aliases: []string{"v"},
		Help:    "[INTENSITY] select vibrate",
		Func:    setAction(packet.ActionVibrate),
	}

	// BeepCmd selects beep.
	BeepCmd = ishell.Cmd{
		Name:    "beep",
		Aliases: []string{"b"},
		Help:    "select beep",
		Func: func(c *ishell.Context) {
			sh.DoCommand(c, &msgs.SetActionRequest{SetActionRequest: pb.SetActionRequest{
				Action: uint32(packet.ActionBeep),
			}})
		},
	}

	// LightCmd toggles the light.
	LightCmd = ishell.Cmd{
		Name:    "light",
		Aliases: []string{"l"},
		Help:    "toggle light",
		Func: func(c *ishell.Context) {
			sh.DoCommand(c, &msgs.LightToggleRequest{})
		},
	}

	// TransmitCmd transmits the selected action.
	TransmitCmd = ishell.Cmd{
		Name:    "transmit",
		Aliases: []string{"t"},
		Help:    "[COUNT(0-65535)] transmit selected action, 4 times by default",
		Func: func(c *ishell.Context) {
			count, present, err := argUint(c, 0, "COUNT")
			if err != nil {
				c.Err(err)
				return
			}
			msg := &msgs.TransmitRequest{TransmitRequest: pb.TransmitRequest{Count: -1}}
			if present {
				if count > 0x7fffffff {
					c.Err(fmt.Errorf("COUNT out of range"))
					return
				}
				msg.Count = int32(count)
			}
			sh.DoCommand(c, msg)
		},
	}

	// AbortCmd drops pending frames.
	AbortCmd = ishell.Cmd{
		Name:    "abort",
		Aliases: []string{"a"},
		Help:    "drop pending transmissions",
		Func: func(c *ishell.Context) {
			sh.DoCommand(c, &msgs.AbortRequest{})
		},
	}

	// StatusCmd shows settings and queue status.
	StatusCmd = ishell.Cmd{
		Name:    "status",
		Aliases: []string{"st"},
		Help:    "show settings and queue status",
		Func: func(c *ishell.Context) {
			sh.DoCommand(c, &msgs.StatusQuery{})
		},
	}

	// WaitCmd waits until all frames are transmitted.
	WaitCmd = ishell.Cmd{
		Name: "wait",
		Help: "[SECONDS] wait until transmission completes",
		Func: func(c *ishell.Context) {
			secs, present, err := argUint(c, 0, "SECONDS")
			if err != nil {
				c.Err(err)
				return
			}
			timeout := 10 * time.Second
			if present {
				timeout = time.Duration(secs) * time.Second
			}
			s := sh.ShellFrom(c)
			status, err := WaitIdle(s, timeout, 50*time.Millisecond)
			if err != nil {
				c.Err(err)
				return
			}
			c.Println(s.Format(status))
		},
	}

	// DecodeCmd decodes a frame from text bits.
	DecodeCmd = ishell.Cmd{
		Name: "decode",
		Help: "BITS... decode a frame",
		Func: func(c *ishell.Context) {
			cmd, err := DecodeBits(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			c.Println(cmd.String())
		},
	}
)

func init() {
	sh.AddCmds(
		&IDCmd,
		&ChannelCmd,
		&IntensityCmd,
		&ShockCmd,
		&VibrateCmd,
		&BeepCmd,
		&LightCmd,
		&TransmitCmd,
		&AbortCmd,
		&StatusCmd,
		&WaitCmd,
		&DecodeCmd,
	)
}
