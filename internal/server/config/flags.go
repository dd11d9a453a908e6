package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/phototranslate/internal/flagx"
)

var knownFlags = []string{
	"-a", "-g", "-d", "-s", "-t", "-translator", "-translator-timeout", "-lang",
	"-max-upload", "-tessdata", "-ocr-lang", "-u", "-p", "-b", "-r", "-e", "-log", "-prod",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string                HTTP bind address (e.g. ":5001")
//	-g string                gRPC health bind address (e.g. ":50051")
//	-d string                PostgreSQL DSN
//	-s string                JWT HMAC secret key
//	-t int                   access token validity, minutes
//	-translator string       translation service URL
//	-translator-timeout int  translation request timeout, seconds
//	-lang string             default target language
//	-max-upload int          maximum image size, bytes
//	-tessdata string         Tesseract data directory
//	-ocr-lang string         Tesseract languages, "+"-separated
//	-u / -p string           S3 access key / secret
//	-b string                S3 bucket (empty disables the image archive)
//	-r string                S3 region
//	-e string                S3 base endpoint
//	-log string              log level
//	-prod                    production mode
//
// Durations are given as integers and converted to time.Duration.
// Unknown arguments are dropped by flagx.FilterArgs before parsing, so the
// -c/-config flag handled by parseJson does not collide with these.
func parseFlags(config *Config, args []string) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC health address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenMinutes := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	fs.StringVar(&config.TranslatorURL, "translator", config.TranslatorURL, "translation service URL")
	translatorSeconds := fs.Int("translator-timeout", int(config.TranslatorTimeout.Seconds()), "translation request timeout (in seconds)")
	fs.StringVar(&config.DefaultTargetLang, "lang", config.DefaultTargetLang, "default target language")
	fs.Int64Var(&config.MaxUploadBytes, "max-upload", config.MaxUploadBytes, "maximum upload size in bytes")
	fs.StringVar(&config.TessdataPrefix, "tessdata", config.TessdataPrefix, "tesseract data directory")
	fs.StringVar(&config.OCRLanguages, "ocr-lang", config.OCRLanguages, "tesseract languages")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "r", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.LogLevel, "log", config.LogLevel, "log level")
	fs.BoolVar(&config.Production, "prod", config.Production, "production mode")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		panic(err)
	}

	// Only explicitly set duration flags apply; otherwise sub-minute values
	// coming from JSON or the environment would be truncated.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*tokenMinutes) * time.Minute
		case "translator-timeout":
			config.TranslatorTimeout = time.Duration(*translatorSeconds) * time.Second
		}
	})
}
