// Package sysinfo captures host facts for the benchmark report's companion
// file. Go runtime facts are always available; everything else is probed
// through a shell session, locally or over ssh, on a best-effort basis.
package sysinfo

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/viant/gosh"
	"github.com/viant/gosh/runner"
	"github.com/viant/gosh/runner/local"
	rssh "github.com/viant/gosh/runner/ssh"
	"golang.org/x/crypto/ssh"

	"github.com/rowflux/rowflux/internal/clock"
)

const probeTimeoutMs = 5000

// Info describes the machine a benchmark ran on.
type Info struct {
	Hostname    string    `json:"hostname,omitempty"`
	OS          string    `json:"os"`
	Arch        string    `json:"arch"`
	NumCPU      int       `json:"numCPU"`
	GoVersion   string    `json:"goVersion"`
	Kernel      string    `json:"kernel,omitempty"`
	CPUModel    string    `json:"cpuModel,omitempty"`
	Memory      string    `json:"memory,omitempty"`
	CollectedAt time.Time `json:"collectedAt"`
}

// Render produces the sysinfo.txt content.
func (i *Info) Render() string {
	var b strings.Builder
	write := func(key, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s: %s\n", key, value)
		}
	}
	write("hostname", i.Hostname)
	write("os", i.OS+"/"+i.Arch)
	write("cpus", fmt.Sprintf("%d", i.NumCPU))
	write("go", i.GoVersion)
	write("kernel", i.Kernel)
	write("cpu model", i.CPUModel)
	write("memory", i.Memory)
	write("collected", i.CollectedAt.Format(time.RFC3339))
	return b.String()
}

// Service collects host information.
type Service struct {
	host      string
	sshConfig *ssh.ClientConfig
	env       map[string]string
}

// New creates a sysinfo service. Without options it describes the local
// machine.
func New(options ...Option) *Service {
	s := &Service{}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Collect gathers host facts. A remote host that cannot be reached is an
// error; a local shell that fails to probe is not, the runtime facts alone
// still make a usable report.
func (s *Service) Collect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
		NumCPU:      runtime.NumCPU(),
		GoVersion:   runtime.Version(),
		CollectedAt: clock.Now(),
	}
	if s.host == "" {
		if name, err := os.Hostname(); err == nil {
			info.Hostname = name
		}
	}

	session, err := s.newSession(ctx)
	if err != nil {
		if s.host != "" {
			return nil, fmt.Errorf("failed to reach %v: %w", s.host, err)
		}
		return info, nil
	}
	defer session.Close()

	info.Kernel = probe(ctx, session, "uname -sr")
	if info.Hostname == "" {
		info.Hostname = probe(ctx, session, "hostname")
	}
	info.CPUModel = probe(ctx, session, "grep -m1 'model name' /proc/cpuinfo | cut -d: -f2")
	info.Memory = probe(ctx, session, "grep MemTotal /proc/meminfo | awk '{print $2, $3}'")
	return info, nil
}

func (s *Service) newSession(ctx context.Context) (*gosh.Service, error) {
	var envOptions []runner.Option
	if len(s.env) > 0 {
		envOptions = append(envOptions, runner.WithEnvironment(s.env))
	}
	if s.host == "" {
		return gosh.New(ctx, local.New(envOptions...))
	}
	if s.sshConfig == nil {
		return nil, fmt.Errorf("ssh config is required for remote host %v", s.host)
	}
	host := s.host
	if !strings.Contains(host, ":") {
		host += ":22"
	}
	return gosh.New(ctx, rssh.New(host, s.sshConfig, envOptions...))
}

func probe(ctx context.Context, session *gosh.Service, command string) string {
	stdout, status, err := session.Run(ctx, command, runner.WithTimeout(probeTimeoutMs))
	if err != nil || status != 0 {
		return ""
	}
	return strings.TrimSpace(stdout)
}
