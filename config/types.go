package config

type Config struct {
	Debug  bool   `mapstructure:"debug"`
	Log    Log    `mapstructure:"log"`
	Limits Limits `mapstructure:"limits"`
	Media  Media  `mapstructure:"media"`
}

type Log struct {
	Level      string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	File       string `mapstructure:"file" validate:"omitempty,abspath"`
	MaxSize    int    `mapstructure:"max_size" validate:"min=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"min=0"`
	MaxAge     int    `mapstructure:"max_age" validate:"min=0"`
	Compress   bool   `mapstructure:"compress"`
}

type Limits struct {
	MaxPayloadSize uint `mapstructure:"max_payload_size" validate:"required"`
}

type Media struct {
	Strategy   string                   `mapstructure:"strategy" validate:"required,oneof=filesystem noop"`
	PublicUrl  string                   `mapstructure:"public_url" validate:"omitempty,url"`
	Filesystem *FilesystemMediaStrategy `mapstructure:"filesystem" validate:"required_if=Strategy filesystem"`
}

type FilesystemMediaStrategy struct {
	Path string `mapstructure:"path" validate:"required,abspath"`
}
