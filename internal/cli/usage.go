package cli

import (
	"github.com/spf13/cobra"
)

const helpTemplate = `spotdl-bulk - download Spotify albums, artists and playlists with spotdl

USAGE
  spotdl-bulk <url_file> [output_dir] [flags]

ARGUMENTS
  url_file                               Text file with one Spotify URL per line
                                         (blank lines and #comments are ignored)
  output_dir                             Destination directory (default: current directory)

FLAGS
  Output:
    --organize                           Create Artist/Album/Track sub-folders
    --overwrite <skip|metadata|force>    Duplicate handling (default: skip)

  Bulk download:
    --bulk                               Add a randomized cooldown between URLs
    --retries <n>                        Maximum attempts per URL (default: 3)
                                         Backoff between attempts: 5s, 10s, 15s...
    --cooldown <seconds>                 Base cooldown in bulk mode (default: 20)
    --cooldown-jitter <seconds>          Random +/- variation (default: 2)
    --start-at <time>                    Wait before the first download
                                         HH:MM, YYYY-MM-DD, "YYYY-MM-DD HH:MM" or YYYY-MM-DDTHH:MM

  Tool & files:
    --spotdl-bin <path>                  spotdl executable (default: spotdl)
    --config <path>                      Path to additional config file
    --log-file <path>                    Append structured JSON run events
    --report <path>                      Append a YAML run summary

  Notifications:
    --notify-webhook <url>               OpenClaw webhook URL (default: http://127.0.0.1:18789/webhook)
    --notify-channel <channel>           Notification channel (default: telegram)
    --notify-chat-id <id>                Recipient chat ID (required to enable notifications)

  Help & Version:
    -v, --verbose                        Show debug output
    -h, --help                           Show this help text
    --version                            Show version, commit, build date

CONFIG FILES
  KEY=VALUE files read in order, later ones win:
    ~/.config/spotdl-bulk/config, ./.spotdl-bulk.conf, --config <path>
  Command-line flags override every file.

EXIT CODES
  0   Success              All URLs processed (some may have failed), or interrupted by the user
  1   Error                Invalid arguments, URL file missing or empty, misconfiguration
  2   ToolMissing          spotdl could not be launched

EXAMPLES
  spotdl-bulk urls.txt
  spotdl-bulk urls.txt ~/Music/Spotify --organize
  spotdl-bulk urls.txt ~/Music --overwrite force
  spotdl-bulk urls.txt ~/Music --bulk --retries 5
  spotdl-bulk urls.txt ~/Music --bulk --cooldown 30 --cooldown-jitter 5
  spotdl-bulk urls.txt ~/Music --bulk --start-at 02:00
`

// SetCustomHelp configures the cobra command to use our custom help template.
func SetCustomHelp(cmd *cobra.Command) {
	cmd.SetHelpTemplate(helpTemplate)
}
