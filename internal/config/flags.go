package config

import "flag"

// ParseFlags registers and parses the command-line flags for the server
// binary. Values left empty fall through to environment variables, the .env
// file, then defaults.
func ParseFlags() Flags {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := flag.String("data-path", "", "Base path for database and search index storage")
	serverName := flag.String("server-name", "", "Name for the server")
	host := flag.String("host", "", "Bind address (default: all interfaces)")
	port := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 0, disabled for streaming)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	geminiModel := flag.String("gemini-model", "", "Gemini model name")
	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	return Flags{
		Env:          *env,
		LogLevel:     *logLevel,
		DataPath:     *dataPath,
		ServerName:   *serverName,
		Host:         *host,
		Port:         *port,
		ReadTimeout:  *readTimeout,
		WriteTimeout: *writeTimeout,
		IdleTimeout:  *idleTimeout,
		GeminiModel:  *geminiModel,
		EnvFile:      *envFile,
	}
}
