// Package preview downloads catalog preview clips and plays them through an audio [Engine].
//
// A [Player] owns one playback session: the engine, the current temporary clip file, and
// whether playback is running. Each call to [Player.PlayWait] downloads the clip into memory,
// writes it to a new uniquely named file (preview-*.mp3), and loads it into the engine.
//
// # Temporary Files
//
// The Player keeps at most one clip file on disk. Loading a new clip deletes the previous file.
// A download that finishes after a newer one was requested is discarded and its file removed,
// so only the newest clip is ever audible. [Player.Close] stops playback and deletes the current file.
//
// # Engines
//
// [OtoEngine] decodes MP3 with go-mp3 and writes 16-bit stereo PCM to an oto context.
// The context is created lazily on the first clip and keeps that clip's sample rate.
//
// # Saving Clips
//
// [SaveClip] downloads a preview to a permanent path and writes ID3v2 tags from the track metadata.
package preview
