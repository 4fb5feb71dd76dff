package settings

import (
	"bytes"
	"os"
	"text/template"

	"github.com/go-home-io/guestkey/common"
	"github.com/pkg/errors"
)

// ITemplateProvider defines template logic.
type ITemplateProvider interface {
	Process([]byte) ([]byte, error)
}

// Template engine provider.
type templateProvider struct {
	logger    common.ILoggerProvider
	functions template.FuncMap
}

// Constructs a new template engine.
func newTemplateProvider(logger common.ILoggerProvider) *templateProvider {
	provider := &templateProvider{
		logger: logger,
	}

	provider.functions = template.FuncMap{
		"env": provider.getEnvVariable,
	}

	return provider
}

// Process applies template functions, which allows reading values
// such as feed URLs and tokens from environment variables.
func (p *templateProvider) Process(rawFile []byte) ([]byte, error) {
	tpl, err := template.New("guestkey").Funcs(p.functions).Parse(string(rawFile))
	if err != nil {
		return nil, errors.Wrap(err, "parse template")
	}

	b := bytes.Buffer{}
	if err := tpl.Execute(&b, nil); err != nil {
		return nil, errors.Wrap(err, "execute template")
	}

	return b.Bytes(), nil
}

// Returns environment variable.
func (p *templateProvider) getEnvVariable(name string) string {
	p.logger.Debug("Template is requesting environment variable",
		common.LogNameToken, name, common.LogSystemToken, logSystem)
	v, ok := os.LookupEnv(name)
	if !ok {
		p.logger.Warn("Environment variable is not set",
			common.LogNameToken, name, common.LogSystemToken, logSystem)
	}

	return v
}
