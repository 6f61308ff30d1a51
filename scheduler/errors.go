/*
 * MIT License
 *
 * Copyright (c) 2026 Nicolas JUHEL
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

package scheduler

import (
	"fmt"

	"github.com/nabbar/fibernet/ferr"
	"github.com/nabbar/fibernet/flog/level"
)

// recoverToError converts a recovered panic value into the error a fiber's
// joiner receives, rather than letting a fiber panic take down the process -
// the scheduler never terminates the process on a fiber error.
func recoverToError(r any) error {
	if err, ok := r.(error); ok {
		return ferr.New(ferr.UnknownError, "fiber panic", err)
	}
	return ferr.New(ferr.UnknownError, fmt.Sprintf("fiber panic: %v", r))
}

func errLevel(err error) level.Level {
	if err == nil {
		return level.InfoLevel
	}
	return level.ErrorLevel
}
