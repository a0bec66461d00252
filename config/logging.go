/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package config

import (
	"context"

	"github.com/nabbar/udpxfer/logger"
	logcfg "github.com/nabbar/udpxfer/logger/config"
	loglvl "github.com/nabbar/udpxfer/logger/level"
)

// Level maps -v/-q onto the logger's severity scale: verbose drops to
// DebugLevel, quiet raises to WarnLevel, otherwise InfoLevel.
func Level(verbose, quiet bool) loglvl.Level {
	switch {
	case verbose:
		return loglvl.DebugLevel
	case quiet:
		return loglvl.WarnLevel
	default:
		return loglvl.InfoLevel
	}
}

// LoggerOptions builds the Options this CLI needs: standard output always
// on, plus one additional log file when logFile is non-empty.
func LoggerOptions(lvl loglvl.Level, logFile string) *logcfg.Options {
	opt := &logcfg.Options{
		Stdout: &logcfg.OptionsStd{},
	}

	if logFile != "" {
		opt.LogFileExtend = true
		opt.LogFile = logcfg.OptionsFiles{
			{
				LogLevel:   levelsAtOrAbove(lvl),
				Filepath:   logFile,
				Create:     true,
				CreatePath: true,
			},
		}
	}

	return opt
}

// levelsAtOrAbove lists every level name at least as severe as lvl, in the
// order the hook's Levels() expects: Critical down through lvl.
func levelsAtOrAbove(lvl loglvl.Level) []string {
	var out []string
	for l := loglvl.PanicLevel; l <= lvl; l++ {
		out = append(out, l.String())
	}
	return out
}

// NewLogger builds and configures a ready-to-use logger for one CLI
// invocation, matching the resolved verbosity and optional log file.
func NewLogger(ctx context.Context, lvl loglvl.Level, logFile string) (logger.Logger, error) {
	l := logger.New(ctx)
	l.SetLevel(lvl)

	if err := l.SetOptions(LoggerOptions(lvl, logFile)); err != nil {
		return nil, err
	}

	return l, nil
}
