package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"strings"
	"subuk/numango/util"

	"github.com/hashicorp/hcl"
	"github.com/imdario/mergo"
)

type UserWebConfig struct {
	Id             string `hcl:",key"`
	FullName       string `hcl:"full_name"`
	HashedPassword string `hcl:"hashed_password"`
}

type WebConfig struct {
	Listen    string          `hcl:"listen"`
	Debug     bool            `hcl:"debug"`
	Documents string          `hcl:"documents"`
	Realm     string          `hcl:"realm"`
	Users     []UserWebConfig `hcl:"user"`
}

type InputConfig struct {
	Extensions  []string `hcl:"extensions"`
	Recursive   bool     `hcl:"recursive"`
	MaxFileSize int      `hcl:"max_file_size"`
}

type ReportConfig struct {
	Format string `hcl:"format"`
	Output string `hcl:"output"`
	Strict bool   `hcl:"strict"`
}

type SubscribeConfig struct {
	Event     string `hcl:",key"`
	Script    string `hcl:"script"`
	Documents string `hcl:"documents"`
	Mandatory bool   `hcl:"mandatory"`
}

type LibvirtConfig struct {
	Uri string `hcl:"uri"`
}

type Config struct {
	LogLevel   string            `hcl:"log_level"`
	Input      InputConfig       `hcl:"input"`
	Report     ReportConfig      `hcl:"report"`
	Web        WebConfig         `hcl:"web"`
	Libvirt    LibvirtConfig     `hcl:"libvirt"`
	Subscribes []SubscribeConfig `hcl:"subscribe"`
}

func Default() *Config {
	return &Config{
		LogLevel: "info",
		Input: InputConfig{
			Extensions:  []string{".txt"},
			MaxFileSize: 10 * 1024 * 1024,
		},
		Report: ReportConfig{
			Format: "text",
		},
		Web: WebConfig{
			Listen: ":8080",
			Realm:  "numango",
		},
	}
}

// Load behaves like Parse but falls back to defaults when the file is
// missing and optional is set.
func Load(filename string, optional bool) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) && optional {
		return Default(), nil
	}
	return Parse(filename)
}

func Parse(filename string) (*Config, error) {
	content, err := ioutil.ReadFile(util.ExpandHomeDir(filename))
	if err != nil {
		return nil, util.NewError(err, "cannot read configuration file")
	}
	return ParseBytes(content)
}

func ParseBytes(content []byte) (*Config, error) {
	config := &Config{}
	if err := hcl.Unmarshal(content, config); err != nil {
		return nil, util.NewError(err, "invalid configuration format")
	}
	if err := mergo.Merge(config, Default()); err != nil {
		return nil, util.NewError(err, "cannot apply default configuration value")
	}

	for index, ext := range config.Input.Extensions {
		if ext == "" {
			return nil, fmt.Errorf("empty input extension at position %d", index)
		}
		if !strings.HasPrefix(ext, ".") {
			config.Input.Extensions[index] = "." + ext
		}
	}

	for _, sub := range config.Subscribes {
		switch sub.Event {
		default:
			return nil, fmt.Errorf("unknown subscribe event '%s'", sub.Event)
		case "analysis_good", "analysis_bad", "analysis_failed":
		}
		if sub.Script == "" {
			return nil, fmt.Errorf("no script specified for subscribe '%s'", sub.Event)
		}
		if _, err := path.Match(sub.Documents, ""); err != nil {
			return nil, fmt.Errorf("invalid documents pattern '%s' for subscribe '%s'", sub.Documents, sub.Event)
		}
	}

	user_ids := map[string]struct{}{}
	for _, user := range config.Web.Users {
		if _, exists := user_ids[user.Id]; exists {
			return nil, fmt.Errorf("duplicate web user '%s'", user.Id)
		}
		user_ids[user.Id] = struct{}{}
		if user.HashedPassword == "" {
			return nil, fmt.Errorf("no hashed_password specified for web user '%s'", user.Id)
		}
	}
	if config.Web.Documents != "" {
		config.Web.Documents = util.ExpandHomeDir(config.Web.Documents)
	}
	return config, nil
}
