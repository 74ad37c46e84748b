package cfg

import (
	"fmt"
	"strings"

	"mdload/internal/domain/errconsts"
	"mdload/internal/domain/keys"
	"mdload/internal/models"
	"mdload/internal/parsing"

	"github.com/spf13/viper"
)

// initViper enables MDLOAD_* environment overrides.
func initViper() {
	viper.SetEnvPrefix(keys.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadConfigFile reads the --config file, if any. Flags set on the command line win.
func loadConfigFile() error {
	path := strings.TrimSpace(viper.GetString(keys.ConfigFile))
	if path == "" {
		return nil
	}

	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf(errconsts.ConfigFileUpdateFail, path, err)
	}
	return nil
}

// buildRequest assembles the immutable request from verified settings.
func buildRequest(rawURL string) (*models.MediaRequest, error) {
	u, err := parsing.ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	req := &models.MediaRequest{
		URL:              u,
		OutputDir:        viper.GetString(keys.OutputDir),
		AutoConfirm:      viper.GetBool(keys.AutoConfirm),
		Verbose:          viper.GetBool(keys.Verbose),
		DryRun:           viper.GetBool(keys.DryRun),
		SkipDownloaded:   viper.GetBool(keys.SkipDownloaded),
		CookieFile:       viper.GetString(keys.CookieFile),
		Username:         viper.GetString(keys.AuthUsername),
		Password:         viper.GetString(keys.AuthPassword),
		AudioBitrateKbps: viper.GetInt(keys.AudioBitrate),
		FromDate:         viper.GetTime(keys.FromDateParsed),
		ToDate:           viper.GetTime(keys.ToDateParsed),
	}

	if h, ok := viper.Get(keys.HeadersParsed).(map[string]string); ok {
		req.Headers = h
	}
	return req, nil
}
