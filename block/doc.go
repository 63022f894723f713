// SPDX-FileCopyrightText: 2025 Patisson Company
// SPDX-License-Identifier: MIT

/*
Package block renders bordered text blocks to the console around setup steps.
The applauncher package uses it to narrate service startup, but this package
has no dependency on the launcher and can be used on its own.

A Block draws a sequence of lines inside an ASCII border sized to the terminal
width, runs an attached action, and returns the action's result.  Three
variants control border ordering: Header draws a full box before the action,
Body draws its lines and overwrites the closing border with a success label
once the action completes, and Footer overwrites the two preceding console
lines with a full box.

Rendering writes ANSI styling and cursor movement sequences unconditionally.
Output that is not attached to a terminal receives the escape bytes literally;
there is no capability detection and no fallback mode.
*/
package block
