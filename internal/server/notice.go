package server

// notice is the single user-visible status message attached to every
// terminal outcome. The UI shell shows it as an auto-dismissing toast;
// TimeoutMS tells it when to dismiss.
type notice struct {
	Level     string `json:"level"`
	Message   string `json:"message"`
	TimeoutMS int    `json:"timeout_ms"`
}

const noticeTimeoutMS = 5000

func infoNotice(msg string) notice {
	return notice{Level: "info", Message: msg, TimeoutMS: noticeTimeoutMS}
}

func successNotice(msg string) notice {
	return notice{Level: "success", Message: msg, TimeoutMS: noticeTimeoutMS}
}

func warningNotice(msg string) notice {
	return notice{Level: "warning", Message: msg, TimeoutMS: noticeTimeoutMS}
}

func errorNotice(msg string) notice {
	return notice{Level: "error", Message: msg, TimeoutMS: noticeTimeoutMS}
}

// offlineNotice flags a result that was served by the local fallback.
func offlineNotice(success string) notice {
	return warningNotice(success + " (offline mode: changes are stored on this device only)")
}
