package server

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/KyleBrandon/emaux-server/config"
	"github.com/KyleBrandon/emaux-server/internal/database"
	"github.com/KyleBrandon/emaux-server/internal/jobs"
	"github.com/KyleBrandon/emaux-server/internal/sensor"
	"github.com/KyleBrandon/emaux-server/pkg/emaux"
	"github.com/KyleBrandon/emaux-server/pkg/server/health"
	"github.com/KyleBrandon/emaux-server/pkg/server/monitor"
	"github.com/KyleBrandon/emaux-server/pkg/server/pump"
	"github.com/KyleBrandon/emaux-server/pkg/server/readings"
	"github.com/KyleBrandon/emaux-server/pkg/server/schedules"
	"github.com/KyleBrandon/emaux-server/pkg/server/status"
	"github.com/KyleBrandon/emaux-server/pkg/server/temperatures"
	"github.com/KyleBrandon/emaux-server/pkg/utils"
	"github.com/joho/godotenv"
	"github.com/nikoksr/notify"
	"github.com/nikoksr/notify/service/twilio"
)

const (
	DEFAULT_SERVER_PORT          = "8080"
	DEFAULT_CONFIG_FILE_LOCATION = "./config/config.json"
)

// Used by "flag" to read command line arguments
var (
	cmdLineFlagMockSensor bool
	cmdLineFlagLogLevel   string
)

type ServerConfig struct {
	mux   *http.ServeMux
	mctx  *monitor.MonitorContext
	boost *jobs.BoostConfig

	ServerPort         string
	DatabaseURL        string
	UseMockSensor      bool
	LogFileLocation    string
	ConfigFileLocation string
	Logger             *slog.Logger
	LoggerLevel        *slog.LevelVar
	LogFile            *os.File
	Notifier           *notify.Notify

	PumpClient     *emaux.Client
	Sensors        sensor.Sensors
	Queries        *database.Queries
	DBConnection   *sql.DB
	OriginPatterns []string
	PollInterval   time.Duration
}

// init will read and initialize the global command line variables
func init() {
	flag.BoolVar(&cmdLineFlagMockSensor, "use_mock_sensor", false, "Indicate if we should use mock cabinet sensors for the server instance.")
	flag.StringVar(&cmdLineFlagLogLevel, "log_level", config.DefaultLogLevel.String(), "The log level to start the server at")
}

// InitializeServer to start working
func InitializeServer() (*ServerConfig, error) {
	slog.Debug(">>InitializeServer")
	defer slog.Debug("<<InitializeServer")

	sc, err := initializeServerConfig()
	if err != nil {
		return nil, err
	}

	sc.mux = http.NewServeMux()

	sc.mctx = monitor.InitializeMonitorContext(sc.Notifier, sc.Queries, sc.Sensors, sc.PumpClient, sc.PollInterval)
	sc.boost = jobs.NewBoostConfig(sc.Queries, sc.PumpClient)

	healthHandler := health.NewHandler(sc.LoggerLevel)
	healthHandler.RegisterRoutes(sc.mux)

	pumpHandler := pump.NewHandler(sc.PumpClient, sc.boost)
	pumpHandler.RegisterRoutes(sc.mux)

	schedulesHandler := schedules.NewHandler(sc.PumpClient)
	schedulesHandler.RegisterRoutes(sc.mux)

	temperatureHandler := temperatures.NewHandler(sc.Sensors)
	temperatureHandler.RegisterRoutes(sc.mux)

	readingsHandler := readings.NewHandler(sc.Queries)
	readingsHandler.RegisterRoutes(sc.mux)

	statusHandler := status.NewHandler(sc.mctx, sc.boost, sc.OriginPatterns)
	statusHandler.RegisterRoutes(sc.mux)

	go func() {
		log.Println(http.ListenAndServe("localhost:6060", nil))
	}()

	return sc, nil
}

// RunServer will start listening for connections
func (sc *ServerConfig) RunServer() {
	slog.Info(">>RunServer")
	defer slog.Info("<<RunServer")

	defer sc.DBConnection.Close()
	defer sc.LogFile.Close()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", sc.ServerPort),
		Handler: sc.mux,
	}

	slog.Info("Starting server", "port", sc.ServerPort)
	if err := server.ListenAndServe(); err != nil {
		slog.Error("Server failed", "error", err)
	}

	sc.mctx.CancelAndWait()
}

func initializeServerConfig() (*ServerConfig, error) {
	slog.Info(">>initializeServerConfig")
	defer slog.Info("<<initializeServerConfig")

	sc := &ServerConfig{}

	// MUST BE FIRST
	sc.readEnvironmentVariables()

	// configure slog
	sc.configureLogger()

	// load the configuration file and environment settings
	settings, err := config.LoadConfigSettings(sc.ConfigFileLocation)
	if err != nil {
		slog.Error("failed to load config file", "error", err)
		os.Exit(1)
	}

	if len(settings.PumpHost) == 0 {
		slog.Error("no pump host is configured")
		os.Exit(1)
	}

	// load the cabinet sensor configuration
	sensors, err := sensor.NewSensorConfig(
		settings.SensorTimeoutSeconds,
		settings.Devices,
		sc.UseMockSensor)
	if err != nil {
		slog.Error("failed to initialize sensors")
		os.Exit(1)
	}

	sc.Sensors = sensors
	sc.OriginPatterns = settings.OriginPatterns
	sc.PollInterval = time.Duration(settings.PollIntervalSeconds) * time.Second
	sc.PumpClient = emaux.NewClient(settings.PumpHost, time.Duration(settings.PumpTimeoutSeconds)*time.Second)
	sc.openDatabase()

	return sc, nil
}

func (sc *ServerConfig) readEnvironmentVariables() {
	slog.Info(">>readEnvironmentVariables")
	defer slog.Info("<<readEnvironmentVariables")

	// load the environment
	err := godotenv.Load()
	if err != nil {
		slog.Warn("could not load .env file", "error", err)
	}

	sc.DatabaseURL = os.Getenv("DATABASE_URL")
	if len(sc.DatabaseURL) == 0 {
		slog.Error("no database connection string is configured")
		os.Exit(1)
	}

	sc.ServerPort = os.Getenv("PORT")
	if len(sc.ServerPort) == 0 {
		sc.ServerPort = DEFAULT_SERVER_PORT
	}

	sc.LogFileLocation = os.Getenv("LOG_FILE_LOCATION")

	sc.ConfigFileLocation = os.Getenv("CONFIG_FILE_LOCATION")
	if len(sc.ConfigFileLocation) == 0 {
		sc.ConfigFileLocation = DEFAULT_CONFIG_FILE_LOCATION
	}

	twilioAccountSID := os.Getenv("TWILIO_ACCOUNT_SID")
	twilioAuthToken := os.Getenv("TWILIO_AUTH_TOKEN")
	twilioFromPhone := os.Getenv("TWILIO_FROM_PHONE_NO")
	twilioToPhone := os.Getenv("TWILIO_TO_PHONE_NO")
	if len(twilioAccountSID) != 0 {
		slog.Info("Twilio account information present, configuring Notifier")

		twilioService, err := twilio.New(twilioAccountSID, twilioAuthToken, twilioFromPhone)
		if err != nil {
			log.Fatalf("failed to initialize Twilio service: %v", err)
		}

		twilioService.AddReceivers(twilioToPhone)

		notifier := notify.New()
		notifier.UseServices(twilioService)
		sc.Notifier = notifier
	}

	// mock sensor flag is a command line flag for debugging
	sc.UseMockSensor = cmdLineFlagMockSensor
}

// configureLogger will initialize the slog to stderr and save the log level so it can be set via API.
func (sc *ServerConfig) configureLogger() {
	slog.Info(">>configureLogger")
	defer slog.Info("<<configureLogger")

	// create a variable to store the current log level
	currentLevel := new(slog.LevelVar)

	// parse the log level from any passed in command line flag
	level, err := utils.ParseLogLevel(cmdLineFlagLogLevel)
	if err != nil {
		slog.Error("Failed to parse the log level, setting to DefaultLogLevel", "error", err, "log_level", cmdLineFlagLogLevel)
		level = config.DefaultLogLevel
	}

	// set the log level
	currentLevel.Set(level)

	// by default we will write to stderr
	logFile := os.Stderr
	if len(sc.LogFileLocation) != 0 {
		slog.Info("Save to log file", "file", sc.LogFileLocation)
		logFile, err = os.OpenFile(sc.LogFileLocation, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			slog.Warn("Failed to open log file: %v", "error", err)
			os.Exit(1)
		}
	}

	// create new text handler for log file
	fileHandler := slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: currentLevel})

	logger := slog.New(fileHandler)

	slog.SetDefault(logger)

	sc.Logger = logger
	sc.LoggerLevel = currentLevel
	sc.LogFile = logFile
}

func (sc *ServerConfig) openDatabase() {
	db, err := sql.Open("postgres", sc.DatabaseURL)
	if err != nil {
		slog.Error("failed to open database connection", "error", err)
	}

	sc.DBConnection = db
	sc.Queries = database.New(db)
}
