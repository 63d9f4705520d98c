package configmanager

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	v1alpha1 "github.com/gdstools/gdskit/pkg/apis/project/v1alpha1"
	"github.com/gdstools/gdskit/pkg/geo/raster"
	"github.com/gdstools/gdskit/pkg/geo/warp"
	"github.com/gdstools/gdskit/pkg/notify"
	"github.com/gdstools/gdskit/pkg/ui/timer"
)

// ConfigManager loads the gdskit.yaml project configuration and keeps the
// result cached for the lifetime of a command.
type ConfigManager struct {
	// Viper is the underlying instance, exposed so callers can repoint it
	// at an explicit config file.
	Viper *viper.Viper

	// Config is the loaded project configuration.
	Config *v1alpha1.Project

	// Writer receives progress and validation output.
	Writer io.Writer

	fieldSelectors  []FieldSelector[v1alpha1.Project]
	configLoaded    bool
	configFileFound bool
	changedFlags    map[string]string
	command         *cobra.Command
}

// NewConfigManager creates a config manager for the given field selectors.
func NewConfigManager(writer io.Writer, fieldSelectors ...FieldSelector[v1alpha1.Project]) *ConfigManager {
	return &ConfigManager{
		Viper:          InitializeViper(),
		Config:         v1alpha1.NewProject(),
		Writer:         writer,
		fieldSelectors: fieldSelectors,
	}
}

// NewCommandConfigManager creates a config manager bound to a command,
// registering one flag per field selector so explicitly set flags override
// config file values.
func NewCommandConfigManager(cmd *cobra.Command, fieldSelectors []FieldSelector[v1alpha1.Project]) *ConfigManager {
	manager := NewConfigManager(cmd.OutOrStdout(), fieldSelectors...)
	manager.command = cmd
	manager.AddFlagsFromFields(cmd)

	return manager
}

// InitializeViper builds a Viper instance that looks for gdskit.yaml in the
// working directory and the user's home directory. GDSKIT_ prefixed
// environment variables override file values.
func InitializeViper() *viper.Viper {
	viperInstance := viper.New()
	viperInstance.SetConfigName("gdskit")
	viperInstance.SetConfigType("yaml")
	viperInstance.AddConfigPath(".")
	viperInstance.AddConfigPath("$HOME")
	viperInstance.SetEnvPrefix("GDSKIT")
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	return viperInstance
}

// LoadConfig loads the project configuration, announcing progress on the
// manager's writer. The result is cached across calls.
func (m *ConfigManager) LoadConfig(tmr timer.Timer) (*v1alpha1.Project, error) {
	return m.loadConfigWithOptions(tmr, false)
}

// LoadConfigSilent loads the project configuration without progress output.
// Validation problems are still written.
func (m *ConfigManager) LoadConfigSilent() (*v1alpha1.Project, error) {
	return m.loadConfigWithOptions(nil, true)
}

// ConfigFileFound reports whether a config file was read during loading.
func (m *ConfigManager) ConfigFileFound() bool {
	return m.configFileFound
}

func (m *ConfigManager) loadConfigWithOptions(tmr timer.Timer, silent bool) (*v1alpha1.Project, error) {
	if m.configLoaded {
		if !silent {
			notify.WriteMessage(notify.Message{
				Type:    notify.SuccessType,
				Content: "config reused",
				Timer:   tmr,
				Writer:  m.Writer,
			})
		}

		return m.Config, nil
	}

	if !silent {
		notify.WriteMessage(notify.Message{
			Type:    notify.TitleType,
			Content: "Load config...",
			Emoji:   "⏳",
			Writer:  m.Writer,
		})
	}

	if err := m.readConfig(silent); err != nil {
		return nil, err
	}

	m.captureChangedFlagValues()

	if err := m.unmarshalAndApplyDefaults(); err != nil {
		return nil, err
	}

	m.applyFlagOverrides()

	if err := m.validateConfig(); err != nil {
		return nil, err
	}

	m.configLoaded = true

	if !silent {
		notify.WriteMessage(notify.Message{
			Type:    notify.SuccessType,
			Content: "config loaded",
			Timer:   tmr,
			Writer:  m.Writer,
		})
	}

	return m.Config, nil
}

func (m *ConfigManager) readConfig(silent bool) error {
	err := m.Viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		if !silent {
			notify.WriteMessage(notify.Message{
				Type:    notify.ActivityType,
				Content: "using default config",
				Writer:  m.Writer,
			})
		}

		return nil
	}

	m.configFileFound = true

	// Config files must declare their own apiVersion and kind.
	m.Config.APIVersion = ""
	m.Config.Kind = ""

	if !silent {
		notify.WriteMessage(notify.Message{
			Type:    notify.ActivityType,
			Content: "'%s' found",
			Args:    []any{m.Viper.ConfigFileUsed()},
			Writer:  m.Writer,
		})
	}

	return nil
}

func (m *ConfigManager) captureChangedFlagValues() {
	m.changedFlags = map[string]string{}

	if m.command == nil {
		return
	}

	m.command.Flags().Visit(func(flag *pflag.Flag) {
		m.changedFlags[flag.Name] = flag.Value.String()
	})
}

func (m *ConfigManager) unmarshalAndApplyDefaults() error {
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		geoEnumDecodeHook(),
	))

	if err := m.Viper.Unmarshal(m.Config, decodeHook); err != nil {
		return fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	for _, selector := range m.fieldSelectors {
		fieldPtr := selector.Selector(m.Config)
		if fieldPtr == nil || selector.DefaultValue == nil {
			continue
		}

		if isFieldEmpty(fieldPtr) {
			setFieldValue(fieldPtr, selector.DefaultValue)
		}
	}

	return nil
}

// applyFlagOverrides re-applies explicitly set flag values after the config
// file unmarshal clobbered them.
func (m *ConfigManager) applyFlagOverrides() {
	if len(m.changedFlags) == 0 {
		return
	}

	for _, selector := range m.fieldSelectors {
		fieldPtr := selector.Selector(m.Config)
		if fieldPtr == nil {
			continue
		}

		flagName := m.GenerateFlagName(fieldPtr)
		if flagName == "" {
			continue
		}

		value, changed := m.changedFlags[flagName]
		if !changed {
			continue
		}

		setFieldValueFromFlag(fieldPtr, value)
	}
}

func (m *ConfigManager) validateConfig() error {
	validationErrs, warnings := m.Config.Validate()

	for _, warning := range warnings {
		notify.WriteMessage(notify.Message{
			Type:    notify.WarningType,
			Content: "%s",
			Args:    []any{warning},
			Writer:  m.Writer,
		})
	}

	if len(validationErrs) == 0 {
		return nil
	}

	for _, validationErr := range validationErrs {
		notify.WriteMessage(notify.Message{
			Type:    notify.ErrorType,
			Content: "%s",
			Args:    []any{validationErr.Error()},
			Writer:  m.Writer,
		})
	}

	return newValidationSummaryError(len(validationErrs), len(warnings))
}

// geoEnumDecodeHook parses cell type, resampling, and compression names in
// config files through the same parsers the flags use, so invalid names
// fail at load time with the full option listing.
func geoEnumDecodeHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}

		value, ok := data.(string)
		if !ok {
			return data, nil
		}

		switch to {
		case reflect.TypeFor[raster.DType]():
			return raster.ParseDType(value)
		case reflect.TypeFor[warp.Resample]():
			return warp.ParseResample(value)
		case reflect.TypeFor[raster.Compression]():
			return raster.ParseCompression(value)
		}

		return data, nil
	}
}
