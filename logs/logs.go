/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package logs

import (
	"fmt"
	"io"
	"log"
	"os"
)

var Logs *log.Logger

func Init(name string) {
	InitWithWriter(name, os.Stderr)
}

// InitWithWriter is Init with a custom destination, tests use it to capture output.
func InitWithWriter(name string, w io.Writer) {
	Logs = log.New(w, name+" ", log.Ldate|log.Ltime|log.Lshortfile)
}

func Log(message string) {
	if Logs == nil {
		Init("app-registry")
	}
	Logs.Output(2, message)
}

func Logf(format string, args ...interface{}) {
	if Logs == nil {
		Init("app-registry")
	}
	Logs.Output(2, fmt.Sprintf(format, args...))
}
