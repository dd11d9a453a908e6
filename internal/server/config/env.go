package config

import (
	"fmt"
	"strconv"
	"time"
)

// EnvPrefix is prepended to every environment variable the server reads.
const EnvPrefix = "PHOTOTRANSLATE_"

// parseEnv overlays values from PHOTOTRANSLATE_* variables. Malformed
// numeric, boolean or duration values panic, like bad flags do.
func parseEnv(config *Config, lookup func(string) (string, bool)) {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	dur := func(name string, dst *time.Duration) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				panic(fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
			}
			*dst = d
		}
	}

	str("HTTP_ADDR", &config.EndpointAddrHTTP)
	str("GRPC_ADDR", &config.EndpointAddrGRPC)
	str("DATABASE_DSN", &config.DatabaseDSN)
	str("SECRET_KEY", &config.SecretKey)
	dur("ACCESS_TOKEN_TTL", &config.AccessTokenValidityDuration)
	str("TRANSLATOR_URL", &config.TranslatorURL)
	dur("TRANSLATOR_TIMEOUT", &config.TranslatorTimeout)
	str("DEFAULT_TARGET_LANG", &config.DefaultTargetLang)
	str("TESSDATA_PREFIX", &config.TessdataPrefix)
	str("OCR_LANGUAGES", &config.OCRLanguages)
	str("S3_ROOT_USER", &config.S3RootUser)
	str("S3_ROOT_PASSWORD", &config.S3RootPassword)
	str("S3_BUCKET", &config.S3Bucket)
	str("S3_REGION", &config.S3Region)
	str("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
	str("LOG_LEVEL", &config.LogLevel)

	if v, ok := lookup(EnvPrefix + "MAX_UPLOAD_BYTES"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			panic(fmt.Errorf("%sMAX_UPLOAD_BYTES: %w", EnvPrefix, err))
		}
		config.MaxUploadBytes = n
	}
	if v, ok := lookup(EnvPrefix + "PRODUCTION"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(fmt.Errorf("%sPRODUCTION: %w", EnvPrefix, err))
		}
		config.Production = b
	}
}
