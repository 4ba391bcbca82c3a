package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testMovefile = `environment: development

search:
  - cdn.old.example
replace:
  - cdn.example.com

local:
  vhost: http://wordpress.local:8080
  wordpress_path: /home/dev/sites/wordpress
  database:
    name: wordpress
    user: root
    password: secret
    host: 127.0.0.1
    port: 3306

remote:
  vhost: https://example.com
  wordpress_path: /var/www/example.com
  exclude:
    - ".git/"
    - "wp-content/cache/"
  database:
    name: example_production
    user: example
    password: prodsecret
    host: localhost
  ssh:
    host: example.com
    user: deploy
    port: 22
`

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "movefile.yaml"), []byte(testMovefile), 0o644)
	require.NoError(t, err)

	config, err := LoadConfig(dir)
	require.NoError(t, err)

	require.Equal(t, "development", config.Environment)
	require.Equal(t, []string{"cdn.old.example"}, config.Search)
	require.Equal(t, []string{"cdn.example.com"}, config.Replace)

	require.Equal(t, "http://wordpress.local:8080", config.Local.Vhost)
	require.Equal(t, "/home/dev/sites/wordpress", config.Local.WordpressPath)
	require.Equal(t, "wordpress", config.Local.DB.Name)
	require.Equal(t, 3306, config.Local.DB.Port)
	require.Nil(t, config.Local.SSH)

	require.Equal(t, "https://example.com", config.Remote.Vhost)
	require.NotNil(t, config.Remote.SSH)
	require.Equal(t, "deploy", config.Remote.SSH.User)
	require.Equal(t, []string{".git/", "wp-content/cache/"}, config.Remote.Exclude)

	require.NoError(t, config.Validate())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "movefile.yaml"), []byte(testMovefile), 0o644)
	require.NoError(t, err)

	t.Setenv("REMOTE_DATABASE_PASSWORD", "from-env")

	config, err := LoadConfig(dir)
	require.NoError(t, err)

	// env wins over the movefile value
	require.Equal(t, "from-env", config.Remote.DB.Password)
	require.Equal(t, "secret", config.Local.DB.Password)
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Local: Environment{
				Vhost:         "http://wordpress.local",
				WordpressPath: "/home/dev/sites/wordpress",
				DB:            DBConfig{Name: "wp", User: "root", Host: "127.0.0.1"},
			},
			Remote: Environment{
				Vhost:         "https://example.com",
				WordpressPath: "/var/www/example.com",
				DB:            DBConfig{Name: "wp", User: "wp", Host: "localhost"},
				SSH:           &SSHConfig{Host: "example.com", User: "deploy"},
			},
		}
	}

	type tc struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}

	tests := []tc{
		{
			name:   "valid_config",
			mutate: func(*Config) {},
		},
		{
			name:    "missing_local_vhost",
			mutate:  func(c *Config) { c.Local.Vhost = "" },
			wantErr: "Vhost",
		},
		{
			name:    "missing_remote_db_name",
			mutate:  func(c *Config) { c.Remote.DB.Name = "" },
			wantErr: "Name",
		},
		{
			name:    "remote_without_ssh",
			mutate:  func(c *Config) { c.Remote.SSH = nil },
			wantErr: "ssh section",
		},
		{
			name:    "local_with_ssh",
			mutate:  func(c *Config) { c.Local.SSH = &SSHConfig{Host: "wordpress.local"} },
			wantErr: "must not have an ssh section",
		},
		{
			name: "identical_vhosts",
			mutate: func(c *Config) {
				c.Remote.Vhost = c.Local.Vhost
			},
			wantErr: "identical",
		},
		{
			name:    "ssh_port_out_of_range",
			mutate:  func(c *Config) { c.Remote.SSH.Port = 70000 },
			wantErr: "lte",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(&config)

			err := config.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestExtractHostPort(t *testing.T) {
	type tc struct {
		name      string
		vhost     string
		wantHost  string
		wantPort  string
		wantError bool
	}

	tests := []tc{
		{
			name:     "with_scheme_host_and_port",
			vhost:    "http://localhost:8080",
			wantHost: "localhost",
			wantPort: "8080",
		},
		{
			name:     "with_scheme_only_host",
			vhost:    "https://example.com",
			wantHost: "example.com",
			wantPort: "",
		},
		{
			name:     "ipv4_with_port",
			vhost:    "http://0.0.0.0:8080",
			wantHost: "0.0.0.0",
			wantPort: "8080",
		},
		{
			name:     "ipv6_with_port",
			vhost:    "http://[::1]:9090",
			wantHost: "::1",
			wantPort: "9090",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Environment{Vhost: tt.vhost}
			host, port, err := e.ExtractHostPort()

			if tt.wantError {
				require.Error(t, err, "expected error for vhost=%q", tt.vhost)
				return
			}

			require.NoError(t, err, "unexpected error for vhost=%q", tt.vhost)
			require.Equal(t, tt.wantHost, host, "wrong host for vhost=%q", tt.vhost)
			require.Equal(t, tt.wantPort, port, "wrong port for vhost=%q", tt.vhost)
		})
	}
}
