package driver

import "time"

// debounce is how long a file must stay quiet before a change is reported.
const debounce = 300 * time.Millisecond
