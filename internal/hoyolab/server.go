package hoyolab

import (
	"fmt"
	"strconv"

	"HoyoSentinel/internal/model"
)

const (
	ServerAsia          = "os_asia"
	ServerTWHKMO        = "os_cht"
	ServerAmerica       = "os_usa"
	ServerEurope        = "os_euro"
	ServerChinaCelestia = "cn_gf01"
	ServerChinaIrminsul = "cn_qd01"

	ServerStarRailAsia    = "prod_official_asia"
	ServerStarRailAmerica = "prod_official_usa"
	ServerStarRailEurope  = "prod_official_eur"
	ServerStarRailTWHKMO  = "prod_official_cht"

	ServerZenlessAsia    = "prod_gf_jp"
	ServerZenlessAmerica = "prod_gf_us"
	ServerZenlessEurope  = "prod_gf_eu"
	ServerZenlessTWHKMO  = "prod_gf_sg"
)

// ServerFor maps a game UID to its region server by the UID's leading digit.
func ServerFor(game model.Game, uid int) (string, error) {
	s := strconv.Itoa(uid)
	if uid <= 0 {
		return "", fmt.Errorf("%w: invalid %s uid %d", ErrAccountNotFound, game, uid)
	}

	if game == model.GameZenless && len(s) == 10 {
		// overseas ZZZ uids are ten digits with a two-digit region prefix
		switch s[:2] {
		case "10":
			return ServerZenlessAmerica, nil
		case "13":
			return ServerZenlessAsia, nil
		case "15":
			return ServerZenlessEurope, nil
		case "17":
			return ServerZenlessTWHKMO, nil
		}
	}

	switch s[0] {
	case '1', '2':
		return ServerChinaCelestia, nil
	case '5':
		return ServerChinaIrminsul, nil
	}

	var table map[byte]string
	switch game {
	case model.GameGenshin:
		table = map[byte]string{'6': ServerAmerica, '7': ServerEurope, '8': ServerAsia, '9': ServerTWHKMO}
	case model.GameStarRail:
		table = map[byte]string{'6': ServerStarRailAmerica, '7': ServerStarRailEurope, '8': ServerStarRailAsia, '9': ServerStarRailTWHKMO}
	case model.GameZenless:
		table = map[byte]string{'6': ServerAmerica, '7': ServerEurope, '8': ServerAsia, '9': ServerTWHKMO}
	}
	if server, ok := table[s[0]]; ok {
		return server, nil
	}
	return "", fmt.Errorf("%w: could not identify the server for %s uid %d", ErrAccountNotFound, game, uid)
}
