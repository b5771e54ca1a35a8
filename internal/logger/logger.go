package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
)

var (
	InfoLogger  = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	DebugLogger = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
)

func Init() {
	InfoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	DebugLogger = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
}

// format appends optional key-value pairs to the message.
func format(msg string, kv []interface{}) string {
	if len(kv) == 0 {
		return msg
	}
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i < len(kv); i += 2 {
		if i+1 < len(kv) {
			fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
		} else {
			fmt.Fprintf(&b, " %v", kv[i])
		}
	}
	return b.String()
}

func Info(msg string, kv ...interface{}) {
	InfoLogger.Output(2, format(msg, kv))
}

func Infof(f string, v ...interface{}) {
	InfoLogger.Output(2, fmt.Sprintf(f, v...))
}

func Error(msg string, kv ...interface{}) {
	ErrorLogger.Output(2, format(msg, kv))
}

func Errorf(f string, v ...interface{}) {
	ErrorLogger.Output(2, fmt.Sprintf(f, v...))
}

func Debug(msg string, kv ...interface{}) {
	DebugLogger.Output(2, format(msg, kv))
}

func Debugf(f string, v ...interface{}) {
	DebugLogger.Output(2, fmt.Sprintf(f, v...))
}

func Fatal(msg string) {
	ErrorLogger.Fatal(msg)
}

func Fatalf(f string, v ...interface{}) {
	ErrorLogger.Fatalf(f, v...)
}
