package lidomain

// CreativeContent carrega a referência de conteúdo do criativo
// (ex.: urn:li:share:123, urn:li:video:456)
type CreativeContent struct {
	Reference string `mapstructure:"reference"`
}

// Creative é o registro bruto de criativo retornado por
// /adAccounts/{id}/creatives?q=criteria. O ID é a URN completa.
type Creative struct {
	ID                 string          `mapstructure:"id"`
	Campaign           string          `mapstructure:"campaign"`
	IntendedStatus     string          `mapstructure:"intendedStatus"`
	IsServing          bool            `mapstructure:"isServing"`
	ServingHoldReasons []string        `mapstructure:"servingHoldReasons"`
	Content            CreativeContent `mapstructure:"content"`
	CreatedAt          int64           `mapstructure:"createdAt"`
	LastModifiedAt     int64           `mapstructure:"lastModifiedAt"`
}
