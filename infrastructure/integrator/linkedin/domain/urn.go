package lidomain

import (
	"fmt"
	"strings"
)

const campaignURNPrefix = "urn:li:sponsoredCampaign:"

// CampaignURN monta a URN completa de uma campanha
func CampaignURN(campaignID int64) string {
	return fmt.Sprintf("%s%d", campaignURNPrefix, campaignID)
}

// EncodedCampaignURNs monta a lista de URNs de campanha pré-codificadas
// para uso dentro de List() na query Restli. A codificação é feita aqui
// porque a query inteira é enviada crua, sem re-encoding.
func EncodedCampaignURNs(campaignIDs []int64) string {
	urns := make([]string, 0, len(campaignIDs))
	for _, id := range campaignIDs {
		urns = append(urns, fmt.Sprintf("urn%%3Ali%%3AsponsoredCampaign%%3A%d", id))
	}

	return strings.Join(urns, ",")
}

// IDFromURN extrai o identificador final de uma URN do LinkedIn.
// Para valores sem ":" retorna a própria string.
func IDFromURN(urn string) string {
	if !strings.Contains(urn, ":") {
		return urn
	}

	parts := strings.Split(urn, ":")
	return parts[len(parts)-1]
}

// URNType retorna o segmento de tipo de uma URN (ex.: "share" em
// urn:li:share:123); vazio quando a URN não tem o formato esperado
func URNType(urn string) string {
	parts := strings.Split(urn, ":")
	if len(parts) < 4 {
		return ""
	}

	return parts[2]
}
