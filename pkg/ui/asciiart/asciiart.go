// Package asciiart renders the GDSKit logo.
package asciiart

import (
	"fmt"
	"io"
)

const logo = `  ____  ____   ____   _  __ _  _
 / ___||  _ \ / ___| | |/ /(_)| |_
| |  _ | | | |\___ \ | ' / | || __|
| |_| || |_| | ___) || . \ | || |_
 \____||____/ |____/ |_|\_\|_| \__|
`

// PrintLogo writes the GDSKit banner to the writer.
func PrintLogo(writer io.Writer) {
	fmt.Fprintln(writer, logo)
}
