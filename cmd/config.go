package cmd

import "fmt"

// Config carries the process configuration loaded from the environment.
// InventoryURL and PaymentProviderURL are optional; when blank the
// corresponding integration runs in its disabled/trusting fallback mode.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RabbitMQURL string

	AuthTokenSecret    string
	InventoryURL       string
	PaymentProviderURL string

	DraftTTLMinutes      int
	DraftCleanupSchedule string
}

// PostgresDSN builds the connection string for the configured database.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
