package filesystem

import (
	"os"
	"os/exec"
	"path"
	"strings"
	"subuk/numango/numa"
	"subuk/numango/util"

	"github.com/rs/zerolog"
)

type scriptedEventBrokerSubscription struct {
	Event     string
	Script    string
	Documents string
	Mandatory bool
}

// Empty pattern matches every document.
func (sub scriptedEventBrokerSubscription) matches(event numa.Event) (bool, error) {
	if sub.Event != event.Name() {
		return false, nil
	}
	if sub.Documents == "" {
		return true, nil
	}
	return path.Match(sub.Documents, event.Plain()["document"])
}

// ScriptedEventBroker runs shell hooks for analysis events, optionally only
// for documents matching a glob. Event fields are exported to the script as
// NUMANGO_<KEY> environment variables.
type ScriptedEventBroker struct {
	logger zerolog.Logger
	subs   []scriptedEventBrokerSubscription
}

func NewScriptedEventBroker(logger zerolog.Logger) *ScriptedEventBroker {
	return &ScriptedEventBroker{
		logger: logger,
		subs:   []scriptedEventBrokerSubscription{},
	}
}

func (epub *ScriptedEventBroker) Subscribe(event, script, documents string, mandatory bool) {
	epub.subs = append(epub.subs, scriptedEventBrokerSubscription{
		Event:     event,
		Script:    script,
		Documents: documents,
		Mandatory: mandatory,
	})
}

func (epub *ScriptedEventBroker) Publish(event numa.Event) error {
	for _, sub := range epub.subs {
		matched, err := sub.matches(event)
		if err != nil {
			return util.NewError(err, "invalid documents pattern for %s hook", sub.Event)
		}
		if !matched {
			continue
		}
		cmd := exec.Command("sh", "-c", sub.Script)
		env := os.Environ()
		for key, value := range event.Plain() {
			env = append(env, "NUMANGO_"+strings.ToUpper(key)+"="+value)
		}
		cmd.Env = env
		epub.logger.Info().
			Str("script", sub.Script).
			Str("event", event.Name()).
			Msg("running script")

		out, err := cmd.CombinedOutput()
		if err != nil {
			if sub.Mandatory {
				return util.NewError(err, "cannot run mandatory script: %s", strings.TrimSpace(string(out)))
			}
			epub.logger.Warn().Err(err).
				Str("out", string(out)).
				Str("script", sub.Script).
				Str("event", event.Name()).
				Msg("cannot run script")
		}
	}
	return nil
}
