// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Manage connection passwords in the system keyring",
	Long: `Store connection passwords in the system keyring. A stored password is
used when --driver, --username and --host match and no password was given
on the command line, in the environment or in the config file.`,
}

var secretSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the password for the connection given by the flags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := connectionSecretKey()
		if err != nil {
			return err
		}

		// Read secret from stdin (without echo)
		fmt.Fprintf(cmd.OutOrStdout(), "Password for %s (input hidden): ", key)
		secretBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("error reading input: %w", err)
		}
		if len(secretBytes) == 0 {
			return fmt.Errorf("password cannot be empty")
		}

		if err := SaveSecretToKeyring(key, string(secretBytes)); err != nil {
			return fmt.Errorf("error saving to keyring: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved password for %s\n", key)
		return nil
	},
}

var secretDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the stored password for the connection given by the flags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := connectionSecretKey()
		if err != nil {
			return err
		}
		if err := DeleteSecretFromKeyring(key); err != nil {
			return fmt.Errorf("error deleting from keyring: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted password for %s\n", key)
		return nil
	},
}

func init() {
	secretCmd.AddCommand(secretSetCmd, secretDeleteCmd)
	rootCmd.AddCommand(secretCmd)
}

func connectionSecretKey() (string, error) {
	cc := config.Connection
	if cc.Driver == "" || cc.Username == "" {
		return "", fmt.Errorf("--driver and --username are required")
	}
	return SecretKey(cc.Driver, cc.Username, cc.Host), nil
}
