package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type MySQLConfig struct {
	DSN string `yaml:"dsn"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// AuthDisabled 关闭 JWT 校验，允许 ws 通过 userID 参数直连（本地调试用）
	AuthDisabled bool `yaml:"authDisabled"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Dev   bool   `yaml:"dev"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwtSecret"`
}

// RulesConfig 游戏规则常量，可按需调整
type RulesConfig struct {
	WinningScore      int         `yaml:"winningScore"`
	FaceUpPerLevel    int         `yaml:"faceUpPerLevel"`
	DoubleTakeMinBank int         `yaml:"doubleTakeMinBank"`
	GoldTokens        int         `yaml:"goldTokens"`
	GemTokensByPlayer map[int]int `yaml:"gemTokensByPlayers"`
	CatalogSeed       uint64      `yaml:"catalogSeed"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	MySQL  MySQLConfig  `yaml:"mysql"`
	Log    LogConfig    `yaml:"log"`
	Auth   AuthConfig   `yaml:"auth"`
	Rules  RulesConfig  `yaml:"rules"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8000"},
		Redis:  RedisConfig{Addr: "localhost:6379"},
		MySQL:  MySQLConfig{DSN: "root:root@tcp(localhost:3306)/splendor?parseTime=true"},
		Log:    LogConfig{Level: "info"},
		Auth:   AuthConfig{JWTSecret: "access-secret"},
		Rules:  DefaultRules(),
	}
}

func DefaultRules() RulesConfig {
	return RulesConfig{
		WinningScore:      15,
		FaceUpPerLevel:    4,
		DoubleTakeMinBank: 4,
		GoldTokens:        5,
		GemTokensByPlayer: map[int]int{2: 4, 3: 5, 4: 7},
	}
}

// Load 先取默认值，再读 YAML 文件（path 为空或文件不存在时跳过），最后用环境变量覆盖
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		default:
			// 文件里写了人数表就整表替换，不和默认值合并
			defaults := cfg.Rules.GemTokensByPlayer
			cfg.Rules.GemTokensByPlayer = nil
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("解析配置文件失败: %w", err)
			}
			if cfg.Rules.GemTokensByPlayer == nil {
				cfg.Rules.GemTokensByPlayer = defaults
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Rules.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REDIS_DB 不是数字: %w", err)
		}
		c.Redis.DB = db
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("MYSQL_DSN"); v != "" {
		c.MySQL.DSN = v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_DEV"); v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LOG_DEV 格式错误: %w", err)
		}
		c.Log.Dev = dev
	}
	if v := os.Getenv("GAME_WINNING_SCORE"); v != "" {
		score, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GAME_WINNING_SCORE 不是数字: %w", err)
		}
		c.Rules.WinningScore = score
	}
	return nil
}

func (r RulesConfig) Validate() error {
	if r.WinningScore <= 0 {
		return fmt.Errorf("winningScore 必须大于 0")
	}
	if r.FaceUpPerLevel <= 0 {
		return fmt.Errorf("faceUpPerLevel 必须大于 0")
	}
	if r.DoubleTakeMinBank <= 0 {
		return fmt.Errorf("doubleTakeMinBank 必须大于 0")
	}
	if r.GoldTokens < 0 {
		return fmt.Errorf("goldTokens 不能为负数")
	}
	if len(r.GemTokensByPlayer) == 0 {
		return fmt.Errorf("gemTokensByPlayers 不能为空")
	}
	for players, n := range r.GemTokensByPlayer {
		if players <= 0 || n <= 0 {
			return fmt.Errorf("gemTokensByPlayers 配置错误: %d 人 %d 颗", players, n)
		}
	}
	return nil
}

// GemTokensFor 返回该人数下每种普通宝石的数量，不支持的人数返回 false
func (r RulesConfig) GemTokensFor(players int) (int, bool) {
	n, ok := r.GemTokensByPlayer[players]
	return n, ok
}
