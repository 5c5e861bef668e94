package noschema

type ServerConfig struct {
	Host string `json:"host" yaml:"host"`
	Port int    `json:"port" yaml:"port"`
}

type clientConfig struct {
	Timeout int `json:"timeout"`
}
