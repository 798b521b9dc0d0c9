package web

import "strings"

func flashMessage(notice string) string {
	switch strings.TrimSpace(notice) {
	case "result_saved":
		return "Resultado salvo."
	}
	return ""
}
