package di

import (
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/evolvlearn/portal/apps/portal/echo"
	"github.com/evolvlearn/portal/core"
	"github.com/evolvlearn/portal/services/backend"
	logsvc "github.com/evolvlearn/portal/services/logger"
)

type BackendLoggerParam struct {
	dig.In
	Logger core.Logger `name:"backendLogger"`
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "PORTAL : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newBackendLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "BACKEND : ", log.LstdFlags|log.Lmicroseconds)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newBackend(conf *core.Config, loggerParam BackendLoggerParam) echoapi.Backend {
	return backend.NewClient(conf, loggerParam.Logger)
}

func newValidate(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	return validate
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newBackendLogger, dig.Name("backendLogger")))
	must(c.Provide(newBackend))
	must(c.Provide(newTranslator))
	must(c.Provide(newValidate))
	must(c.Provide(echoapi.NewServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
