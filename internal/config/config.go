package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quirky-analytics/leadgen/internal/domain/lead"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Provider struct {
		APIKey string `yaml:"apiKey"`
		Model  string `yaml:"model"`
	} `yaml:"provider"`

	Criteria struct {
		TargetSectors    []string `yaml:"targetSectors"`
		TargetIndustries []string `yaml:"targetIndustries"`
		Services         string   `yaml:"services"`
	} `yaml:"criteria"`

	Archive struct {
		Enabled    bool   `yaml:"enabled"`
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"archive"`

	Auth struct {
		APIKeys map[string]string `yaml:"apiKeys"`
	} `yaml:"auth"`

	RateLimit struct {
		Capacity   int `yaml:"capacity"`
		RefillRate int `yaml:"refillRate"`
	} `yaml:"rateLimit"`
}

// Default qualification profile, used when the config file leaves the
// criteria section empty.
var (
	defaultSectors    = []string{"Technology", "Financial Services", "Healthcare", "Retail", "Manufacturing", "E-commerce"}
	defaultIndustries = []string{"SaaS", "E-commerce", "Manufacturing", "Consulting", "Fintech", "Healthtech"}
	defaultServices   = `- Data Science Consulting & Strategy
- AI Solutions Development & Implementation
- AI Agents Building (Custom autonomous agents for business processes)
- AI Automation Solutions (Workflow automation, process optimization)
- Power BI Dashboard Development & Training
- Tableau Analytics & Visualization Solutions
- Machine Learning Model Development
- Predictive Analytics Implementation
- Data Pipeline Engineering
- Advanced Analytics & Business Intelligence`
)

// Load reads the config file, applies defaults and environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if len(c.Criteria.TargetSectors) == 0 {
		c.Criteria.TargetSectors = defaultSectors
	}
	if len(c.Criteria.TargetIndustries) == 0 {
		c.Criteria.TargetIndustries = defaultIndustries
	}
	if c.Criteria.Services == "" {
		c.Criteria.Services = defaultServices
	}
	if c.RateLimit.Capacity == 0 {
		c.RateLimit.Capacity = 10
	}
	if c.RateLimit.RefillRate == 0 {
		c.RateLimit.RefillRate = 1
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.Provider.APIKey = v
	}
}

// DefaultCriteria returns the configured qualification profile.
func (c *Config) DefaultCriteria() lead.Criteria {
	return lead.Criteria{
		TargetSectors:    c.Criteria.TargetSectors,
		TargetIndustries: c.Criteria.TargetIndustries,
		Services:         c.Criteria.Services,
	}
}
