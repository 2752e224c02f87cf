package respond

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/mintleaf-web/respond/etag"
)

// FromEnv builds ResponderOptFns from RESPOND_* environment variables,
// loading a .env file first when one is present.
//
// Recognized variables:
//
//	RESPOND_ETAG             off | weak | strong
//	RESPOND_JSON_ESCAPE      true | false
//	RESPOND_JSON_SPACES      integer
//	RESPOND_JSONP_CALLBACK   query parameter name
//	RESPOND_COOKIE_SECRET    signing secret
//
// Unset or unparseable variables fall back to the NewResponder defaults.
func FromEnv() []ResponderOptFn {
	_ = godotenv.Load()

	var opts []ResponderOptFn

	switch os.Getenv("RESPOND_ETAG") {
	case "off":
		opts = append(opts, WithoutETag())
	case "strong":
		opts = append(opts, WithETag(etag.Strong))
	case "weak":
		opts = append(opts, WithETag(etag.Weak))
	}

	if envVarOrBool("RESPOND_JSON_ESCAPE", false) {
		opts = append(opts, WithJSONEscape())
	}

	if n := envVarOrInt("RESPOND_JSON_SPACES", 0); n > 0 {
		opts = append(opts, WithJSONSpaces(n))
	}

	if name := os.Getenv("RESPOND_JSONP_CALLBACK"); name != "" {
		opts = append(opts, WithJSONPCallback(name))
	}

	if secret := os.Getenv("RESPOND_COOKIE_SECRET"); secret != "" {
		opts = append(opts, WithSigningSecret(secret))
	}

	return opts
}

// envVarOrBool gets the environment variable from the provided key,
// parses it into a bool, or returns the provided default.
func envVarOrBool(key string, def bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}

	return b
}

// envVarOrInt gets the environment variable from the provided key,
// parses it into an int, or returns the provided default.
func envVarOrInt(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}

	return n
}
