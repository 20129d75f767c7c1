package texpect

import (
	"bufio"
	"bytes"
	"io"
)

// Prepare writes a golden template for the text read from out. The template
// matches exactly the input it was prepared from; fragments for the parts
// that are allowed to vary are edited in afterwards. Each line keeps its own
// terminator. Since the golden format has no escape character, a literal '<'
// is written as the fragment <[<]>.
func Prepare(golden io.Writer, out io.Reader) (err error) {
	var sep lineSepScanner
	scn := bufio.NewScanner(out)
	scn.Split(sep.ScanLines)
	for scn.Scan() {
		line := bytes.ReplaceAll(scn.Bytes(), []byte{OpenFragment}, []byte("<[<]>"))
		if _, err = golden.Write(line); err != nil {
			return err
		}
		if _, err = golden.Write(sep); err != nil {
			return err
		}
	}
	return scn.Err()
}

type lineSepScanner []byte

func (lsc *lineSepScanner) ScanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	// modificated version of bufio.Scan
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		res, cr := dropCR(data[0:i])
		*lsc = data[i-cr : i+1]
		return i + 1, res, nil
	}
	if atEOF {
		res, cr := dropCR(data)
		*lsc = data[len(data)-cr:]
		return len(data), res, nil
	}
	return 0, nil, nil
}

func dropCR(data []byte) ([]byte, int) {
	// modificated version of bufio.dropCR
	if len(data) > 0 && data[len(data)-1] == '\r' {
		return data[0 : len(data)-1], 1
	}
	return data, 0
}
