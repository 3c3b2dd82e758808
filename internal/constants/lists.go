package constants

var (
	// причины простоя, как в выпадающем списке Downtime
	DowntimeReasons = map[string]bool{
		"Break":           true,
		"Lunch":           true,
		"Equipment Issue": true,
		"Meeting":         true,
		"Other":           true,
	}

	DowntimeReasonOrder = []string{"Break", "Lunch", "Equipment Issue", "Meeting", "Other"}

	// базовые типы кейсов, если в стандартах региона ничего нет
	DefaultCaseTypes = []string{"Primary", "Secondary", "CR", "Stage RX", "Bite Sync"}

	HistoryStatuses = map[string]bool{
		"OK":  true,
		"LOW": true,
	}
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)
