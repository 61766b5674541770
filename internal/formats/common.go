package formats

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"chartloc/internal/model"
)

// normalizeLine removes the trailing newline of one physical line.
// Handles both Windows \r\n and Unix \n endings.
func normalizeLine(line string) string {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line
}

// classifyLines streams the input line by line and feeds each line to
// strip, which removes comment spans and may carry state across lines.
// Streaming keeps memory bounded and keeps line numbers aligned with the
// physical file, which range lookups depend on.
func classifyLines(reader io.Reader, strip func(line string) string) ([]model.ClassifiedLine, error) {
	var lines []model.ClassifiedLine

	bufferedReader := bufio.NewReader(reader)
	number := 0
	for {
		line, err := bufferedReader.ReadString('\n')
		// Clean EOF with no residual characters: nothing left to classify.
		if errors.Is(err, io.EOF) && len(line) == 0 {
			break
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}

		number++
		currentLine := normalizeLine(line)
		stripped := strip(currentLine)
		lines = append(lines, model.ClassifiedLine{
			Number:     number,
			Raw:        currentLine,
			Stripped:   stripped,
			Meaningful: strings.TrimSpace(stripped) != "",
		})

		// EOF with content means the last line had no trailing newline;
		// it has been classified, so exit now.
		if errors.Is(err, io.EOF) {
			break
		}
	}

	return lines, nil
}
