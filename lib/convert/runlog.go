package convert

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// LogName is the name of the per-run log file in the output directory.
const LogName = "conversion.log"

const logTimeFormat = "2006-01-02 15:04:05,000"

// lineFormatter writes "<time> <message>" lines, with no level or fields.
type lineFormatter struct{}

func (lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(e.Time.Format(logTimeFormat))
	b.WriteByte(' ')
	b.WriteString(e.Message)
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// openRunLog creates or truncates the log file in dir.
func openRunLog(dir string) (*logrus.Logger, *os.File, error) {
	fp, err := os.Create(filepath.Join(dir, LogName))
	if err != nil {
		return nil, nil, err
	}
	log := logrus.New()
	log.SetOutput(fp)
	log.SetFormatter(lineFormatter{})
	log.SetLevel(logrus.InfoLevel)
	return log, fp, nil
}
