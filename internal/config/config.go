package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN                string `env:"DSN,required"`
		ConnectTimeout     int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout       int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		TransactionTimeout int    `env:"TRANSACTION_TIMEOUT" envDefault:"20"`
		MaxOpenConns       int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns       int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime        int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	InitialAdmin struct {
		Username string `env:"USERNAME" envDefault:"admin"`
		Password string `env:"PASSWORD,required"`
		FullName string `env:"FULL_NAME" envDefault:"管理员"`
		Email    string `env:"EMAIL,required"`
	} `envPrefix:"INITIAL_ADMIN_"`
	JWT struct {
		Expiration int    `env:"EXPIRATION" envDefault:"336"` // 单位为小时，14 天
		Secret     string `env:"SECRET,required,notEmpty"`
	} `envPrefix:"JWT_"`
	Seed struct {
		Operator struct {
			Password    string `env:"PASSWORD" envDefault:"dispatcher123"`
			EmailDomain string `env:"EMAIL_DOMAIN" envDefault:"mandaluyong.gov.ph"`
		} `envPrefix:"OPERATOR_"`
	} `envPrefix:"SEED_"`
	Email struct {
		SMTP struct {
			Username    string `env:"USERNAME"`
			Password    string `env:"PASSWORD"`
			Host        string `env:"HOST"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	RabbitMQ struct {
		DSN             string `env:"DSN,required"`
		PublishTimeout  int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
		SimulationQueue string `env:"SIMULATION_QUEUE" envDefault:"simulation_queue"`
		EmailQueue      string `env:"EMAIL_QUEUE" envDefault:"email_queue"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host                string `env:"HOST" envDefault:"localhost"`
		Port                int    `env:"PORT" envDefault:"6379"`
		Password            string `env:"PASSWORD"`
		ConnectTimeout      int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		OperationExpiration int    `env:"OPERATION_EXPIRATION" envDefault:"10"`
	} `envPrefix:"REDIS_"`
	CORS struct {
		AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:5173"`
		MaxAge         int      `env:"MAX_AGE" envDefault:"300"`
	} `envPrefix:"CORS_"`
	Simulation Simulation `envPrefix:"SIMULATION_"`
}

// Simulation 自动分配的默认参数，请求中未指定的参数使用这里的值
type Simulation struct {
	ResultExpiration int `env:"RESULT_EXPIRATION" envDefault:"86400"` // 单位为秒
	LogInterval      int `env:"LOG_INTERVAL" envDefault:"50"`
	Swarm            struct {
		Particles  int     `env:"PARTICLES" envDefault:"100"`
		Iterations int     `env:"ITERATIONS" envDefault:"300"`
		Inertia    float64 `env:"INERTIA" envDefault:"0.5"`
		Cognitive  float64 `env:"COGNITIVE" envDefault:"1.5"`
		Social     float64 `env:"SOCIAL" envDefault:"1.5"`
	} `envPrefix:"SWARM_"`
	Firefly struct {
		Fireflies  int     `env:"FIREFLIES" envDefault:"100"`
		Iterations int     `env:"ITERATIONS" envDefault:"300"`
		Alpha      float64 `env:"ALPHA" envDefault:"0.5"`
		Beta0      float64 `env:"BETA0" envDefault:"1.0"`
		Gamma      float64 `env:"GAMMA" envDefault:"0.01"`
	} `envPrefix:"FIREFLY_"`
	Weights struct {
		W1 float64 `env:"W1" envDefault:"0.2"`
		W2 float64 `env:"W2" envDefault:"0.2"`
		W3 float64 `env:"W3" envDefault:"0.2"`
		W4 float64 `env:"W4" envDefault:"0.2"`
		W5 float64 `env:"W5" envDefault:"0.2"`
	} `envPrefix:"WEIGHT_"`
	Lambdas struct {
		SRR    float64 `env:"SRR" envDefault:"0.5"`
		Health float64 `env:"HEALTH" envDefault:"0.3"`
		Log    float64 `env:"LOG" envDefault:"0.2"`
	} `envPrefix:"LAMBDA_"`
	// 请求参数合并后的上限，0 表示不限制
	Limits struct {
		MaxParticles  int `env:"MAX_PARTICLES" envDefault:"1000"`
		MaxFireflies  int `env:"MAX_FIREFLIES" envDefault:"500"`
		MaxIterations int `env:"MAX_ITERATIONS" envDefault:"2000"`
	} `envPrefix:"LIMIT_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// 只返回第一个错误使得日志更清晰
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}

// LoadSimulationConfig 只读取自动分配相关的配置，供不需要数据库的命令行工具使用
func LoadSimulationConfig() (*Simulation, error) {
	sim := &Simulation{}
	if err := env.ParseWithOptions(sim, env.Options{Prefix: "SIMULATION_"}); err != nil {
		return nil, err
	}
	return sim, nil
}
