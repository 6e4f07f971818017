package bot

// HelpText lists the commands.
const HelpText = `Scrabble commands:
  new-game @player @player [@player @player]  start a game for 2 to 4 players
  rack (or tiles)                             show your tile rack
  reorder <tiles>                             move tiles to the front of your rack
  exchange <tiles>                            trade tiles with the pouch; exchange nothing to pass
  play (<startx>,<starty>) (<endx>,<endy>) <word> [<replacements>]
                                              play a word; use _ for a blank and list
                                              the letters the blanks stand for after it
  challenge                                   challenge the last word played
  undo                                        take back the last move
  tile <text>                                 say something in tiles
  help                                        show this message

Coordinates run from (0,0) at the top left to (14,14) at the bottom right.`
