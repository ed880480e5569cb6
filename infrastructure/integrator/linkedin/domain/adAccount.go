package lidomain

// AdAccount é o registro bruto de conta retornado por /adAccounts?q=search.
// Campos desconhecidos da API são tolerados e ignorados na decodificação.
type AdAccount struct {
	ID       int64  `mapstructure:"id"`
	Name     string `mapstructure:"name"`
	Status   string `mapstructure:"status"`
	Currency string `mapstructure:"currency"`
	Type     string `mapstructure:"type"`
	Test     bool   `mapstructure:"test"`
}
