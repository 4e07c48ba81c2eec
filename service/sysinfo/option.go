package sysinfo

import "golang.org/x/crypto/ssh"

// Option customises the sysinfo service.
type Option func(*Service)

// WithHost targets a remote machine; requires WithSSHConfig.
func WithHost(host string) Option {
	return func(s *Service) {
		s.host = host
	}
}

// WithSSHConfig supplies credentials for remote collection
func WithSSHConfig(config *ssh.ClientConfig) Option {
	return func(s *Service) {
		s.sshConfig = config
	}
}

// WithEnvironment sets shell environment for the probe session
func WithEnvironment(env map[string]string) Option {
	return func(s *Service) {
		s.env = env
	}
}
