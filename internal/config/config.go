package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Size        SizeConfig        `mapstructure:"size" yaml:"size"`
	Duplication DuplicationConfig `mapstructure:"duplication" yaml:"duplication"`
	Performance PerformanceConfig `mapstructure:"performance" yaml:"performance"`
	Audit       AuditConfig       `mapstructure:"audit" yaml:"audit"`
}

type SizeConfig struct {
	MaxTotalBytes int `mapstructure:"max_total_bytes" yaml:"max_total_bytes"`
	MaxJSBytes    int `mapstructure:"max_js_bytes" yaml:"max_js_bytes"`
	MaxCSSBytes   int `mapstructure:"max_css_bytes" yaml:"max_css_bytes"`
	MaxJSPercent  int `mapstructure:"max_js_percent" yaml:"max_js_percent"`
}

type DuplicationConfig struct {
	MinFunctionBodyLength  int `mapstructure:"min_function_body_length" yaml:"min_function_body_length"`
	MinStringLiteralLength int `mapstructure:"min_string_literal_length" yaml:"min_string_literal_length"`
	StringRepeatLimit      int `mapstructure:"string_repeat_limit" yaml:"string_repeat_limit"`
	DOMQueryRepeatLimit    int `mapstructure:"dom_query_repeat_limit" yaml:"dom_query_repeat_limit"`
	DeclarationRepeatLimit int `mapstructure:"declaration_repeat_limit" yaml:"declaration_repeat_limit"`
	VendorPrefixLimit      int `mapstructure:"vendor_prefix_limit" yaml:"vendor_prefix_limit"`
	DeepSelectorParts      int `mapstructure:"deep_selector_parts" yaml:"deep_selector_parts"`
	InlineStyleLimit       int `mapstructure:"inline_style_limit" yaml:"inline_style_limit"`
	MinSkeletonLength      int `mapstructure:"min_skeleton_length" yaml:"min_skeleton_length"`
	SkeletonRepeatLimit    int `mapstructure:"skeleton_repeat_limit" yaml:"skeleton_repeat_limit"`
}

type PerformanceConfig struct {
	LongInlineStyleLength     int `mapstructure:"long_inline_style_length" yaml:"long_inline_style_length"`
	InlineStyleCountLimit     int `mapstructure:"inline_style_count_limit" yaml:"inline_style_count_limit"`
	MaxDOMNodes               int `mapstructure:"max_dom_nodes" yaml:"max_dom_nodes"`
	LongInlineScriptLength    int `mapstructure:"long_inline_script_length" yaml:"long_inline_script_length"`
	RenderBlockingCSSLimit    int `mapstructure:"render_blocking_css_limit" yaml:"render_blocking_css_limit"`
	ExpensiveSelectorLimit    int `mapstructure:"expensive_selector_limit" yaml:"expensive_selector_limit"`
	MaxCSSRules               int `mapstructure:"max_css_rules" yaml:"max_css_rules"`
	LayoutReadLimit           int `mapstructure:"layout_read_limit" yaml:"layout_read_limit"`
	ConsoleCallLimit          int `mapstructure:"console_call_limit" yaml:"console_call_limit"`
	EventListenerLimit        int `mapstructure:"event_listener_limit" yaml:"event_listener_limit"`
	JSShareForRecommendation  int `mapstructure:"js_share_for_recommendation" yaml:"js_share_for_recommendation"`
	CSSShareForRecommendation int `mapstructure:"css_share_for_recommendation" yaml:"css_share_for_recommendation"`
}

type AuditConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

func Load(configPath string) (*Config, error) {
	config := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(".bundlecheck")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return config, nil
}

func DefaultConfig() *Config {
	return &Config{
		Size: SizeConfig{
			MaxTotalBytes: 500000,
			MaxJSBytes:    250000,
			MaxCSSBytes:   100000,
			MaxJSPercent:  70,
		},
		Duplication: DuplicationConfig{
			MinFunctionBodyLength:  20,
			MinStringLiteralLength: 15,
			StringRepeatLimit:      2,
			DOMQueryRepeatLimit:    3,
			DeclarationRepeatLimit: 5,
			VendorPrefixLimit:      10,
			DeepSelectorParts:      4,
			InlineStyleLimit:       10,
			MinSkeletonLength:      30,
			SkeletonRepeatLimit:    2,
		},
		Performance: PerformanceConfig{
			LongInlineStyleLength:  50,
			InlineStyleCountLimit:  5,
			MaxDOMNodes:            1500,
			LongInlineScriptLength: 1000,
			RenderBlockingCSSLimit: 3,
			ExpensiveSelectorLimit: 5,
			MaxCSSRules:            1000,
			LayoutReadLimit:        20,
			ConsoleCallLimit:       5,
			EventListenerLimit:     20,

			JSShareForRecommendation:  50,
			CSSShareForRecommendation: 30,
		},
		Audit: AuditConfig{
			TimeoutSeconds: 120,
		},
	}
}

func (c *Config) Validate() error {
	if err := c.validateSize(); err != nil {
		return err
	}
	if err := c.validateDuplication(); err != nil {
		return err
	}
	if err := c.validatePerformance(); err != nil {
		return err
	}
	return c.validateAudit()
}

func (c *Config) validateSize() error {
	if c.Size.MaxTotalBytes <= 0 {
		return fmt.Errorf("size.max_total_bytes must be positive")
	}
	if c.Size.MaxJSBytes <= 0 {
		return fmt.Errorf("size.max_js_bytes must be positive")
	}
	if c.Size.MaxCSSBytes <= 0 {
		return fmt.Errorf("size.max_css_bytes must be positive")
	}
	if c.Size.MaxJSPercent <= 0 || c.Size.MaxJSPercent > 100 {
		return fmt.Errorf("size.max_js_percent must be between 1 and 100")
	}
	return nil
}

func (c *Config) validateDuplication() error {
	if c.Duplication.MinFunctionBodyLength <= 0 {
		return fmt.Errorf("duplication.min_function_body_length must be positive")
	}
	if c.Duplication.MinStringLiteralLength <= 0 {
		return fmt.Errorf("duplication.min_string_literal_length must be positive")
	}
	if c.Duplication.DeepSelectorParts <= 1 {
		return fmt.Errorf("duplication.deep_selector_parts must be greater than 1")
	}
	return nil
}

func (c *Config) validatePerformance() error {
	if c.Performance.MaxDOMNodes <= 0 {
		return fmt.Errorf("performance.max_dom_nodes must be positive")
	}
	if c.Performance.MaxCSSRules <= 0 {
		return fmt.Errorf("performance.max_css_rules must be positive")
	}
	if c.Performance.JSShareForRecommendation <= 0 || c.Performance.JSShareForRecommendation > 100 {
		return fmt.Errorf("performance.js_share_for_recommendation must be between 1 and 100")
	}
	if c.Performance.CSSShareForRecommendation <= 0 || c.Performance.CSSShareForRecommendation > 100 {
		return fmt.Errorf("performance.css_share_for_recommendation must be between 1 and 100")
	}
	return nil
}

func (c *Config) validateAudit() error {
	if c.Audit.TimeoutSeconds <= 0 {
		return fmt.Errorf("audit.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) Save(path string) error {
	v := viper.New()
	v.SetConfigType("yaml")

	v.Set("size", c.Size)
	v.Set("duplication", c.Duplication)
	v.Set("performance", c.Performance)
	v.Set("audit", c.Audit)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
